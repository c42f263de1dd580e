package chat

import "time"

// MaxMessageLength bounds message content accepted on the write path.
const MaxMessageLength = 1000

// Message is the document-store record for one chat message. SenderUsername
// is denormalized at write time; later renames do not rewrite history.
// Records are append-only and never mutated.
type Message struct {
	ID             string    `firestore:"-" json:"id"`
	ChatID         string    `firestore:"chat_id" json:"chat_id"`
	SenderID       string    `firestore:"sender_id" json:"sender_id"`
	SenderUsername string    `firestore:"sender_username" json:"sender_username"`
	Content        string    `firestore:"content" json:"content"`
	Timestamp      time.Time `firestore:"timestamp" json:"timestamp"`
}
