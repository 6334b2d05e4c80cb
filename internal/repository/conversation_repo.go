package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/zubairahm3d/pak-style-backend/internal/models"
)

type ConversationRepository struct {
	db DBTX
}

func NewConversationRepository(db DBTX) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateOrGet returns the conversation for the given pair, creating it on
// first contact. Participants are stored in normalized order so the pair
// is unique regardless of who reaches out first.
func (r *ConversationRepository) CreateOrGet(
	ctx context.Context,
	userA int64,
	userB int64,
) (*models.Conversation, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	query := `
		INSERT INTO conversations (participant_a, participant_b)
		VALUES ($1, $2)
		ON CONFLICT (participant_a, participant_b)
		DO UPDATE SET updated_at = conversations.updated_at
		RETURNING id, participant_a, participant_b, last_message, created_at, updated_at
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&conversation.ID,
		&conversation.ParticipantA,
		&conversation.ParticipantB,
		&conversation.LastMessageAt,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, conversationID int64) (*models.Conversation, error) {
	query := `
		SELECT id, participant_a, participant_b, last_message, created_at, updated_at
		FROM conversations
		WHERE id = $1
	`

	var conversation models.Conversation
	err := r.db.QueryRow(ctx, query, conversationID).Scan(
		&conversation.ID,
		&conversation.ParticipantA,
		&conversation.ParticipantB,
		&conversation.LastMessageAt,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// TouchLastMessage records the timestamp of the most recent append.
func (r *ConversationRepository) TouchLastMessage(ctx context.Context, conversationID int64, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE conversations
		SET last_message = $2, updated_at = NOW()
		WHERE id = $1
	`, conversationID, at)
	return err
}

// ListForUser returns every conversation the user participates in, with
// both participants projected, the latest message, and that user's
// per-conversation unread count, newest activity first.
func (r *ConversationRepository) ListForUser(
	ctx context.Context,
	userID int64,
) ([]models.ConversationSummary, error) {
	query := `
		SELECT
			c.id,
			c.last_message,
			pa.id, pa.name, pa.email, pa.profile_picture,
			pb.id, pb.name, pb.email, pb.profile_picture,
			lm.id,
			lm.conversation_id,
			lm.sender_id,
			lm.content,
			lm.is_read,
			lm.created_at,
			COALESCE(uc.unread_count, 0)
		FROM conversations c
		JOIN users pa ON pa.id = c.participant_a
		JOIN users pb ON pb.id = c.participant_b
		LEFT JOIN LATERAL (
			SELECT id, conversation_id, sender_id, content, is_read, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC, id DESC
			LIMIT 1
		) lm ON TRUE
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS unread_count
			FROM messages
			WHERE conversation_id = c.id
			  AND sender_id <> $1
			  AND is_read = FALSE
		) uc ON TRUE
		WHERE c.participant_a = $1 OR c.participant_b = $1
		ORDER BY c.last_message DESC, c.id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ConversationSummary, 0)
	for rows.Next() {
		var summary models.ConversationSummary
		var participantA, participantB models.UserSummary
		var messageID sql.NullInt64
		var messageConversationID sql.NullInt64
		var messageSenderID sql.NullInt64
		var messageContent sql.NullString
		var messageIsRead sql.NullBool
		var messageCreatedAt sql.NullTime

		if err := rows.Scan(
			&summary.ID,
			&summary.LastMessageAt,
			&participantA.ID, &participantA.Name, &participantA.Email, &participantA.ProfilePicture,
			&participantB.ID, &participantB.Name, &participantB.Email, &participantB.ProfilePicture,
			&messageID,
			&messageConversationID,
			&messageSenderID,
			&messageContent,
			&messageIsRead,
			&messageCreatedAt,
			&summary.UnreadCount,
		); err != nil {
			return nil, err
		}

		summary.Participants = []models.UserSummary{participantA, participantB}
		if messageID.Valid {
			summary.LastMessage = &models.ChatMessage{
				ID:             messageID.Int64,
				ConversationID: messageConversationID.Int64,
				SenderID:       messageSenderID.Int64,
				Content:        messageContent.String,
				IsRead:         messageIsRead.Bool,
				CreatedAt:      messageCreatedAt.Time,
			}
		}

		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
