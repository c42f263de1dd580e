package firestore

import (
	"context"
	"fmt"

	gfirestore "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
	"github.com/yungbote/huddle-backend/internal/pkg/envutil"
	"github.com/yungbote/huddle-backend/internal/pkg/logger"
)

// MessageStore is the append-only per-chat message log. Documents live under
// chats/{chatID}/messages and are never mutated or deleted by this backend.
type MessageStore interface {
	Append(ctx context.Context, msg *chat.Message) (*chat.Message, error)
	ListChronological(ctx context.Context, chatID string) ([]*chat.Message, error)
	// ListRecent fetches up to limit of the most recent messages and returns
	// them in chronological order.
	ListRecent(ctx context.Context, chatID string, limit int) ([]*chat.Message, error)
	Close() error
}

type messageStore struct {
	log    *logger.Logger
	client *gfirestore.Client
}

func NewMessageStore(ctx context.Context, log *logger.Logger) (MessageStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	projectID := envutil.String("FIRESTORE_PROJECT_ID", "")
	if projectID == "" {
		return nil, fmt.Errorf("missing FIRESTORE_PROJECT_ID")
	}
	credsFile := envutil.String("FIREBASE_CREDENTIALS_FILE", "")

	var opts []option.ClientOption
	if credsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credsFile))
	}
	client, err := gfirestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	return &messageStore{
		log:    log.With("service", "FirestoreMessageStore"),
		client: client,
	}, nil
}

func (s *messageStore) messages(chatID string) *gfirestore.CollectionRef {
	return s.client.Collection("chats").Doc(chatID).Collection("messages")
}

func (s *messageStore) Append(ctx context.Context, msg *chat.Message) (*chat.Message, error) {
	ref := s.messages(msg.ChatID).NewDoc()
	if _, err := ref.Set(ctx, msg); err != nil {
		return nil, fmt.Errorf("write message to firestore: %w", err)
	}
	out := *msg
	out.ID = ref.ID
	return &out, nil
}

func (s *messageStore) ListChronological(ctx context.Context, chatID string) ([]*chat.Message, error) {
	iter := s.messages(chatID).OrderBy("timestamp", gfirestore.Asc).Documents(ctx)
	defer iter.Stop()

	var msgs []*chat.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read messages from firestore: %w", err)
		}
		var m chat.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		msgs = append(msgs, &m)
	}
	return msgs, nil
}

func (s *messageStore) ListRecent(ctx context.Context, chatID string, limit int) ([]*chat.Message, error) {
	iter := s.messages(chatID).OrderBy("timestamp", gfirestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var msgs []*chat.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read recent messages from firestore: %w", err)
		}
		var m chat.Message
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode message %s: %w", doc.Ref.ID, err)
		}
		m.ID = doc.Ref.ID
		msgs = append(msgs, &m)
	}
	// Fetched newest-first; flip to chronological for callers.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

func (s *messageStore) Close() error {
	return s.client.Close()
}
