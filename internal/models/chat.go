package models

import "time"

// Conversation is a pairwise message thread. Participants are stored in
// normalized order (ParticipantA < ParticipantB) so each pair has at most
// one conversation.
type Conversation struct {
	ID            int64     `json:"id"`
	ParticipantA  int64     `json:"participant_a"`
	ParticipantB  int64     `json:"participant_b"`
	LastMessageAt time.Time `json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Participants returns both participant ids.
func (c Conversation) Participants() [2]int64 {
	return [2]int64{c.ParticipantA, c.ParticipantB}
}

// Other returns the participant that is not userID, or 0 when userID is
// not part of the conversation.
func (c Conversation) Other(userID int64) int64 {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB
	case c.ParticipantB:
		return c.ParticipantA
	}
	return 0
}

// Has reports whether userID participates in the conversation.
func (c Conversation) Has(userID int64) bool {
	return userID == c.ParticipantA || userID == c.ParticipantB
}

type ChatMessage struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Content        string     `json:"content"`
	IsRead         bool       `json:"is_read"`
	ReadBy         *int64     `json:"read_by,omitempty"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// MessageDetail is a message with its sender resolved.
type MessageDetail struct {
	ChatMessage
	Sender *UserSummary `json:"sender,omitempty"`
}

type ConversationSummary struct {
	ID            int64         `json:"id"`
	Participants  []UserSummary `json:"participants"`
	LastMessageAt time.Time     `json:"last_message_at"`
	LastMessage   *ChatMessage  `json:"last_message,omitempty"`
	UnreadCount   int           `json:"unread_count"`
}

type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
