package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/zubairahm3d/pak-style-backend/internal/models"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestChatServiceConversationFlow(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationChatService(pool)

	customerID := createChatTestUser(t, ctx, pool, "user")
	designerID := createChatTestUser(t, ctx, pool, "designer")
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, customerID, designerID) })

	first, err := service.StartConversation(ctx, customerID, designerID, "Salam, I need a sherwani for December")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if first.RecipientID != designerID {
		t.Fatalf("expected recipient %d, got %d", designerID, first.RecipientID)
	}
	if first.Message.IsRead {
		t.Fatal("new message must start unread")
	}

	// Starting again with the same pair, in either order, reuses the
	// conversation.
	second, err := service.StartConversation(ctx, designerID, customerID, "Walaikum salam, send your measurements")
	if err != nil {
		t.Fatalf("StartConversation (reverse): %v", err)
	}
	if second.Conversation.ID != first.Conversation.ID {
		t.Fatalf("expected one conversation per pair, got %d and %d", first.Conversation.ID, second.Conversation.ID)
	}
	if !second.Message.CreatedAt.After(first.Message.CreatedAt) && !second.Message.CreatedAt.Equal(first.Message.CreatedAt) {
		t.Fatalf("message timestamps must not go backwards: %v then %v", first.Message.CreatedAt, second.Message.CreatedAt)
	}

	third, err := service.SendMessage(ctx, customerID, first.Conversation.ID, "Sending them tonight")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if third.RecipientID != designerID {
		t.Fatalf("expected recipient %d, got %d", designerID, third.RecipientID)
	}

	designerUnread, err := service.GetTotalUnreadCount(ctx, designerID)
	if err != nil {
		t.Fatalf("GetTotalUnreadCount designer: %v", err)
	}
	if designerUnread != 2 {
		t.Fatalf("expected designer to have 2 unread, got %d", designerUnread)
	}
	customerUnread, err := service.GetTotalUnreadCount(ctx, customerID)
	if err != nil {
		t.Fatalf("GetTotalUnreadCount customer: %v", err)
	}
	if customerUnread != 1 {
		t.Fatalf("expected customer to have 1 unread, got %d", customerUnread)
	}

	cleared, err := service.MarkMessagesAsRead(ctx, first.Conversation.ID, designerID)
	if err != nil {
		t.Fatalf("MarkMessagesAsRead: %v", err)
	}
	if cleared != 2 {
		t.Fatalf("expected 2 messages cleared, got %d", cleared)
	}

	// A second pass is a no-op: the read flip is one-way.
	cleared, err = service.MarkMessagesAsRead(ctx, first.Conversation.ID, designerID)
	if err != nil {
		t.Fatalf("MarkMessagesAsRead (repeat): %v", err)
	}
	if cleared != 0 {
		t.Fatalf("expected repeat mark-read to clear nothing, got %d", cleared)
	}

	designerUnread, err = service.GetTotalUnreadCount(ctx, designerID)
	if err != nil {
		t.Fatalf("GetTotalUnreadCount designer after read: %v", err)
	}
	if designerUnread != 0 {
		t.Fatalf("expected 0 unread after mark-read, got %d", designerUnread)
	}

	// The cached counter must agree with the recomputation.
	designer, err := repository.NewUserRepository(pool).GetByID(ctx, designerID)
	if err != nil {
		t.Fatalf("GetByID designer: %v", err)
	}
	if designer.UnreadMessages != 0 {
		t.Fatalf("expected cached counter 0, got %d", designer.UnreadMessages)
	}
}

func TestChatServiceListsConversationsAndMessages(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationChatService(pool)

	customerID := createChatTestUser(t, ctx, pool, "user")
	designerID := createChatTestUser(t, ctx, pool, "designer")
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, customerID, designerID) })

	delivery, err := service.StartConversation(ctx, customerID, designerID, "Do you work with raw silk?")
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if _, err := service.SendMessage(ctx, designerID, delivery.Conversation.ID, "Yes, bring a swatch"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	summaries, err := service.ListConversations(ctx, customerID)
	if err != nil {
		t.Fatalf("ListConversations: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(summaries))
	}
	summary := summaries[0]
	if summary.UnreadCount != 1 {
		t.Fatalf("expected 1 unread for customer, got %d", summary.UnreadCount)
	}
	if summary.LastMessage == nil || summary.LastMessage.Content != "Yes, bring a swatch" {
		t.Fatalf("expected latest message projected, got %+v", summary.LastMessage)
	}
	if len(summary.Participants) != 2 {
		t.Fatalf("expected both participants projected, got %+v", summary.Participants)
	}

	messages, total, err := service.ListMessages(ctx, customerID, delivery.Conversation.ID, 1, 20)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if total != 2 || len(messages) != 2 {
		t.Fatalf("expected 2 messages, got total=%d len=%d", total, len(messages))
	}
	if messages[0].Content != "Do you work with raw silk?" {
		t.Fatalf("messages must come back in append order, got %q first", messages[0].Content)
	}
	if messages[0].Sender == nil || messages[0].Sender.ID != customerID {
		t.Fatalf("expected sender projection, got %+v", messages[0].Sender)
	}

	// An outsider cannot read the conversation.
	outsiderID := createChatTestUser(t, ctx, pool, "user")
	t.Cleanup(func() { cleanupChatTestUsers(t, ctx, pool, outsiderID) })
	if _, _, err := service.ListMessages(ctx, outsiderID, delivery.Conversation.ID, 1, 20); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for outsider, got %v", err)
	}
	if _, err := service.SendMessage(ctx, outsiderID, delivery.Conversation.ID, "hello"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden for outsider send, got %v", err)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationChatService(pool *pgxpool.Pool) *ChatService {
	return NewChatService(
		pool,
		repository.NewConversationRepository(pool),
		repository.NewMessageRepository(pool),
		repository.NewUserRepository(pool),
	)
}

func createChatTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userType string) int64 {
	t.Helper()

	userRepo := repository.NewUserRepository(pool)
	user := &models.User{
		PublicID:     uuid.NewString(),
		Name:         fmt.Sprintf("Chat Test %s", userType),
		Email:        fmt.Sprintf("chat-test-%s-%d@example.com", userType, time.Now().UnixNano()),
		PasswordHash: "test-hash",
		UserType:     userType,
		Status:       "active",
	}
	if err := userRepo.Create(ctx, user); err != nil {
		t.Fatalf("Create(%s): %v", userType, err)
	}
	return user.ID
}

func cleanupChatTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, `
		DELETE FROM messages WHERE conversation_id IN (
			SELECT id FROM conversations
			WHERE participant_a = ANY($1) OR participant_b = ANY($1)
		)`, userIDs); err != nil {
		t.Fatalf("cleanup messages: %v", err)
	}
	if _, err := pool.Exec(ctx,
		"DELETE FROM conversations WHERE participant_a = ANY($1) OR participant_b = ANY($1)",
		userIDs); err != nil {
		t.Fatalf("cleanup conversations: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
