package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zubairahm3d/pak-style-backend/internal/config"
	"github.com/zubairahm3d/pak-style-backend/internal/handlers"
	"github.com/zubairahm3d/pak-style-backend/internal/middleware"
	"github.com/zubairahm3d/pak-style-backend/internal/repository"
	"github.com/zubairahm3d/pak-style-backend/internal/services"
	chatws "github.com/zubairahm3d/pak-style-backend/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	designerRepo := repository.NewDesignerRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customOrderRepo := repository.NewCustomOrderRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	var mailer services.Mailer
	if cfg.MailEnabled() {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
	}

	authHandler := handlers.NewAuthHandler(userRepo, mailer, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, mailer)
	userHandler := handlers.NewUserHandler(userService)
	designerHandler := handlers.NewDesignerHandler(designerRepo)
	brandHandler := handlers.NewBrandHandler(brandRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	orderService := services.NewOrderService(orderRepo, mailer)
	orderHandler := handlers.NewOrderHandler(orderService)
	customOrderService := services.NewCustomOrderService(db, customOrderRepo)
	customOrderHandler := handlers.NewCustomOrderHandler(customOrderService)

	chatHub := chatws.NewHub()
	go chatHub.Run()
	chatService := services.NewChatService(db, conversationRepo, messageRepo, userRepo)
	chatHandler := handlers.NewChatHandler(chatService, chatHub, cfg.JWTSecret)

	api := app.Group("/api/v1")

	api.Post("/users/signup", authHandler.Signup)
	api.Post("/users/login", authHandler.Login)
	api.Post("/users/reset-password", authHandler.ResetPassword)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	users := protected.Group("/users")
	users.Get("", userHandler.List)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/change-password", userHandler.ChangePassword)
	users.Post("/:id/brand-approval", userHandler.BrandApproval)
	users.Get("/:id/portfolio", userHandler.GetPortfolio)
	users.Post("/:id/portfolio", userHandler.AddPortfolioImages)
	users.Delete("/:id/portfolio", userHandler.RemovePortfolioImage)

	designers := protected.Group("/designers")
	designers.Get("", designerHandler.List)
	designers.Post("", designerHandler.Create)
	designers.Get("/:id", designerHandler.Get)
	designers.Put("/:id", designerHandler.Update)
	designers.Delete("/:id", designerHandler.Delete)

	brands := protected.Group("/brands")
	brands.Get("", brandHandler.List)
	brands.Post("", brandHandler.Create)
	brands.Get("/:id", brandHandler.Get)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", brandHandler.Delete)

	products := protected.Group("/products")
	products.Get("", productHandler.List)
	products.Post("", productHandler.Create)
	products.Get("/date-range", productHandler.ListByDateRange)
	products.Post("/add-timestamps", productHandler.BackfillTimestamps)
	products.Get("/:id", productHandler.Get)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	orders := protected.Group("/orders")
	orders.Get("", orderHandler.List)
	orders.Post("", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/confirm-payment", orderHandler.ConfirmPayment)
	orders.Delete("/:id", orderHandler.Delete)

	customOrders := protected.Group("/custom-orders")
	customOrders.Get("", customOrderHandler.List)
	customOrders.Post("", customOrderHandler.Create)
	customOrders.Get("/:id", customOrderHandler.Get)
	customOrders.Put("/:id", customOrderHandler.Update)
	customOrders.Patch("/:id/status", customOrderHandler.UpdateStatus)
	customOrders.Delete("/:id", customOrderHandler.Delete)

	chat := protected.Group("/chat")
	chat.Post("/start-conversation", chatHandler.StartConversation)
	chat.Post("/send-message", chatHandler.SendMessage)
	chat.Post("/mark-messages-read", chatHandler.MarkMessagesAsRead)
	chat.Get("/conversations/:userId", chatHandler.ListConversations)
	chat.Get("/messages/:conversationId", chatHandler.ListMessages)
	chat.Get("/unread-count/:userId", chatHandler.GetUnreadCount)

	api.Use("/ws", chatHandler.WebSocketAuth)
	api.Get("/ws", websocket.New(chatHandler.HandleWebSocket))
}
