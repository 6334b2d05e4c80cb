package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

type ChatService struct {
	db               dbBeginner
	conversationRepo *repository.ConversationRepository
	messageRepo      *repository.MessageRepository
	userRepo         *repository.UserRepository
}

// ChatDelivery is what a successful append produces: the conversation,
// the stored message, and who should be notified.
type ChatDelivery struct {
	Conversation *models.Conversation
	Message      *models.ChatMessage
	RecipientID  int64
}

func NewChatService(
	db dbBeginner,
	conversationRepo *repository.ConversationRepository,
	messageRepo *repository.MessageRepository,
	userRepo *repository.UserRepository,
) *ChatService {
	return &ChatService{
		db:               db,
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
	}
}

// StartConversation opens (or reuses) the pair conversation and appends
// the first message. The conversation and message are committed together;
// the recipient's cached unread counter is bumped afterwards as its own
// atomic update, so a crash in between under-counts the cache but never
// the log.
func (s *ChatService) StartConversation(
	ctx context.Context,
	userID int64,
	recipientID int64,
	content string,
) (*ChatDelivery, error) {
	if userID <= 0 || recipientID <= 0 || userID == recipientID {
		return nil, ErrInvalidInput
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txConversationRepo := repository.NewConversationRepository(tx)
	txMessageRepo := repository.NewMessageRepository(tx)

	conversation, err := txConversationRepo.CreateOrGet(ctx, userID, recipientID)
	if err != nil {
		return nil, err
	}

	message, err := txMessageRepo.Create(ctx, conversation.ID, userID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := txConversationRepo.TouchLastMessage(ctx, conversation.ID, message.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	conversation.LastMessageAt = message.CreatedAt

	s.bumpUnread(ctx, recipientID)

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  recipientID,
	}, nil
}

// SendMessage appends to an existing conversation. The sender must be one
// of the two participants.
func (s *ChatService) SendMessage(
	ctx context.Context,
	senderID int64,
	conversationID int64,
	content string,
) (*ChatDelivery, error) {
	if conversationID <= 0 || senderID <= 0 {
		return nil, ErrInvalidInput
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	if !conversation.Has(senderID) {
		return nil, ErrForbidden
	}
	recipientID := conversation.Other(senderID)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txConversationRepo := repository.NewConversationRepository(tx)
	txMessageRepo := repository.NewMessageRepository(tx)

	message, err := txMessageRepo.Create(ctx, conversationID, senderID, trimmed)
	if err != nil {
		return nil, err
	}

	if err := txConversationRepo.TouchLastMessage(ctx, conversationID, message.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	conversation.LastMessageAt = message.CreatedAt

	s.bumpUnread(ctx, recipientID)

	return &ChatDelivery{
		Conversation: conversation,
		Message:      message,
		RecipientID:  recipientID,
	}, nil
}

// MarkMessagesAsRead flips every unread message from the other
// participant (a one-way transition) and lowers the reader's cached
// counter by exactly the number flipped. Idempotent: a second call flips
// nothing and leaves the counter alone.
func (s *ChatService) MarkMessagesAsRead(
	ctx context.Context,
	conversationID int64,
	readerID int64,
) (int64, error) {
	if conversationID <= 0 || readerID <= 0 {
		return 0, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrConversationNotFound
		}
		return 0, err
	}
	if !conversation.Has(readerID) {
		return 0, ErrForbidden
	}

	cleared, err := s.messageRepo.MarkConversationRead(ctx, conversationID, readerID)
	if err != nil {
		return 0, err
	}

	if cleared > 0 {
		if err := s.userRepo.DecrementUnread(ctx, readerID, cleared); err != nil {
			log.Printf("chat: decrement unread cache for user %d: %v", readerID, err)
		}
	}
	return cleared, nil
}

// GetTotalUnreadCount recomputes the unread total from the message log.
// This is the source of truth; the users.unread_messages column is only a
// cache.
func (s *ChatService) GetTotalUnreadCount(ctx context.Context, userID int64) (int, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return 0, refErr(err, ErrUserNotFound)
	}
	return s.messageRepo.CountUnreadForUser(ctx, userID)
}

func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, refErr(err, ErrUserNotFound)
	}
	return s.conversationRepo.ListForUser(ctx, userID)
}

func (s *ChatService) ListMessages(
	ctx context.Context,
	userID int64,
	conversationID int64,
	page int,
	limit int,
) ([]models.MessageDetail, int, error) {
	if conversationID <= 0 || page <= 0 || limit <= 0 {
		return nil, 0, ErrInvalidInput
	}

	conversation, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, ErrConversationNotFound
		}
		return nil, 0, err
	}
	if !conversation.Has(userID) {
		return nil, 0, ErrForbidden
	}

	return s.messageRepo.ListByConversation(ctx, conversationID, limit, (page-1)*limit)
}

// bumpUnread updates the recipient's cached counter outside the message
// transaction. Failures only widen the cache drift, which
// GetTotalUnreadCount is immune to, so they are logged and swallowed.
func (s *ChatService) bumpUnread(ctx context.Context, recipientID int64) {
	if err := s.userRepo.IncrementUnread(ctx, recipientID); err != nil {
		log.Printf("chat: increment unread cache for user %d: %v", recipientID, err)
	}
}

func FormatChatTimestamp(ts time.Time) string {
	return ts.UTC().Format(time.RFC3339)
}
