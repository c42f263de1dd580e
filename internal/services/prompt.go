package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/huddle-backend/internal/domain/chat"
)

const summarizationPrompt = `You are a helpful assistant that summarizes group chat conversations.

Chat name: %s
Chat description: %s

Summarize the following conversation concisely. Capture the main topics
discussed, any decisions made, and any action items. Do not invent content
that is not present in the transcript.

Conversation:
%s`

// formatTranscript renders messages as "<sender_username>: <content>" lines
// in the order given, one message per line.
func formatTranscript(msgs []*chat.Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.SenderUsername)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

func renderSummaryPrompt(chatName, chatDescription string, msgs []*chat.Message) string {
	if strings.TrimSpace(chatDescription) == "" {
		chatDescription = "(none)"
	}
	return fmt.Sprintf(summarizationPrompt, chatName, chatDescription, formatTranscript(msgs))
}
