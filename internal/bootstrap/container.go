package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"lending-concierge-be/internal/config"
	"lending-concierge-be/internal/controller"
	"lending-concierge-be/internal/handler"
	"lending-concierge-be/internal/pkg/logger"
	"lending-concierge-be/internal/pkg/mailer"
	"lending-concierge-be/internal/pkg/ratelimit"
	"lending-concierge-be/internal/repository/memory"
	"lending-concierge-be/internal/repository/unitofwork"
	"lending-concierge-be/internal/service"
	"lending-concierge-be/internal/websocket"
	"lending-concierge-be/pkg/llm/factory"
	pktNats "lending-concierge-be/pkg/nats"
	"lending-concierge-be/pkg/storage"
)

const inquiryEmailTopic = "inquiry_emails"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	UserController    controller.IUserController
	BrokerController  controller.IBrokerController
	CaseController    controller.ICaseController
	ChatbotController controller.IChatbotController
	InquiryController controller.IInquiryController
	AdminController   controller.IAdminController

	// Background services, run by main
	ConsumerService service.IConsumerService

	// WebSockets
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Shared
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	emailService := mailer.NewEmailService(cfg.SMTP)

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)

	// LLM provider
	llmProvider, err := factory.NewProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		natsPub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Object storage
	objectStore, err := storage.NewMinIOClient(cfg.Storage)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}
	presignExpiry := time.Duration(cfg.Storage.PresignExpiryMin) * time.Minute
	urlCache := memory.NewURLCache(presignExpiry)

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Services
	chatLimiter := ratelimit.NewDailyLimiter(rdb, "chat_quota", cfg.Ai.DailyLimit)

	publisherService := service.NewPublisherService(inquiryEmailTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, inquiryEmailTopic, uowFactory, emailService, sysLogger)

	authService := service.NewAuthService(uowFactory, emailService, natsPub, sysLogger)
	userService := service.NewUserService(uowFactory)
	galleryService := service.NewGalleryService(uowFactory, objectStore, urlCache, presignExpiry, sysLogger)
	brokerService := service.NewBrokerService(uowFactory, galleryService)
	caseService := service.NewCaseService(uowFactory, galleryService, natsPub, sysLogger)
	inquiryService := service.NewInquiryService(uowFactory, publisherService, natsPub, wsHub, sysLogger)

	chatSessionService := service.NewChatSessionService(uowFactory)
	chatbotService := service.NewChatbotService(uowFactory, chatSessionService, llmProvider, chatLimiter, sysLogger)

	adminService := service.NewAdminService(uowFactory, sysLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService, cfg),
		UserController:    controller.NewUserController(userService),
		BrokerController:  controller.NewBrokerController(brokerService),
		CaseController:    controller.NewCaseController(caseService, galleryService),
		ChatbotController: controller.NewChatbotController(chatbotService),
		InquiryController: controller.NewInquiryController(inquiryService),
		AdminController:   controller.NewAdminController(adminService),

		ConsumerService: consumerService,

		NotificationHandler: handler.NewNotificationHandler(wsHub, sysLogger),
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}
