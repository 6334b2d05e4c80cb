package repository

import (
	"context"

	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

type MessageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to the conversation log. Messages are never
// updated except for the one-way read flip, and never deleted.
func (r *MessageRepository) Create(
	ctx context.Context,
	conversationID int64,
	senderID int64,
	content string,
) (*models.ChatMessage, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, content, is_read)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, conversation_id, sender_id, content, is_read, read_by, read_at, created_at
	`

	var message models.ChatMessage
	err := r.db.QueryRow(ctx, query, conversationID, senderID, content).Scan(
		&message.ID,
		&message.ConversationID,
		&message.SenderID,
		&message.Content,
		&message.IsRead,
		&message.ReadBy,
		&message.ReadAt,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListByConversation returns messages in append order with the sender
// projected.
func (r *MessageRepository) ListByConversation(
	ctx context.Context,
	conversationID int64,
	limit int,
	offset int,
) ([]models.MessageDetail, int, error) {
	totalQuery := `
		SELECT COUNT(*)
		FROM messages
		WHERE conversation_id = $1
	`

	var total int
	if err := r.db.QueryRow(ctx, totalQuery, conversationID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			m.id, m.conversation_id, m.sender_id, m.content, m.is_read,
			m.read_by, m.read_at, m.created_at,
			u.id, u.name, u.email, u.profile_picture
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, conversationID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	messages := make([]models.MessageDetail, 0)
	for rows.Next() {
		var detail models.MessageDetail
		var sender models.UserSummary
		if err := rows.Scan(
			&detail.ID,
			&detail.ConversationID,
			&detail.SenderID,
			&detail.Content,
			&detail.IsRead,
			&detail.ReadBy,
			&detail.ReadAt,
			&detail.CreatedAt,
			&sender.ID, &sender.Name, &sender.Email, &sender.ProfilePicture,
		); err != nil {
			return nil, 0, err
		}
		detail.Sender = &sender
		messages = append(messages, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkConversationRead flips every unread message authored by the other
// participant and records the receipt. It returns the number of messages
// flipped; calling it again immediately flips none.
func (r *MessageRepository) MarkConversationRead(
	ctx context.Context,
	conversationID int64,
	readerID int64,
) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE messages
		SET is_read = TRUE, read_by = $2, read_at = NOW()
		WHERE conversation_id = $1
		  AND sender_id <> $2
		  AND is_read = FALSE
	`, conversationID, readerID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountUnreadForUser is the authoritative unread computation: messages in
// any of the user's conversations, authored by someone else, still
// unread. The cached users.unread_messages counter may drift; this never
// does.
func (r *MessageRepository) CountUnreadForUser(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM messages m
		JOIN conversations c ON c.id = m.conversation_id
		WHERE (c.participant_a = $1 OR c.participant_b = $1)
		  AND m.sender_id <> $1
		  AND m.is_read = FALSE
	`

	var count int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
