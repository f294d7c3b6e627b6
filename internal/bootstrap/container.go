package bootstrap

import (
	"context"
	"log"

	"ai-rooms-be/internal/config"
	"ai-rooms-be/internal/controller"
	"ai-rooms-be/internal/handler"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/internal/repository/implementation"
	"ai-rooms-be/internal/repository/memory"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/internal/service"
	"ai-rooms-be/internal/websocket"
	"ai-rooms-be/pkg/ai/classifier"
	"ai-rooms-be/pkg/ai/coordinator"
	"ai-rooms-be/pkg/ai/executor"
	"ai-rooms-be/pkg/ai/responder"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/embedding"
	"ai-rooms-be/pkg/gateway"
	"ai-rooms-be/pkg/llm/gemini"
	"ai-rooms-be/pkg/rag"
	"ai-rooms-be/pkg/websearch"

	pktNats "ai-rooms-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RoomController      controller.IRoomController
	MessageController   controller.IMessageController
	TaskController      controller.ITaskController
	GoalController      controller.IGoalController
	KnowledgeController controller.IKnowledgeController
	DocumentController  controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	EventAuditService service.IEventAuditService

	// WebSockets
	RoomStreamHandler *handler.RoomStreamHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/rooms_ws.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. AI Pipeline
	configured := cfg.Keys.GoogleGemini != ""
	if !configured {
		log.Printf("[WARN] GOOGLE_GEMINI_API_KEY not set, the AI teammate is disabled")
	}

	llmProvider := gemini.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.ChatModel)
	embeddingProvider := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	modelGateway := gateway.NewModelGateway(llmProvider, embeddingProvider, configured, cfg.Ai.MaxRetries, sysLogger)

	chunkRepo := implementation.NewDocumentChunkRepository(db)
	index := rag.NewIndex(chunkRepo, modelGateway, sysLogger)

	rosterCache := memory.NewRosterRepository()
	contextStore := service.NewAiContextStore(uowFactory)
	contextAssembler := roomctx.New(contextStore, rosterCache, index, cfg.Ai.AssistantName, sysLogger)

	taskService := service.NewTaskService(uowFactory)
	searchClient := websearch.NewDuckDuckGoClient()

	toolExecutor := executor.New(modelGateway, taskService, index, searchClient, cfg.Ai.AssistantName, cfg.Ai.MaxToolRounds, sysLogger)
	responseGenerator := responder.New(modelGateway, cfg.Ai.AssistantName, sysLogger)
	gateClassifier := classifier.New(modelGateway, cfg.Ai.AssistantName, sysLogger)

	// Nil when the gateway has no credentials; the message service then
	// skips the pipeline entirely.
	pipeline := coordinator.New(modelGateway, gateClassifier, contextAssembler, toolExecutor, responseGenerator, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Keys.IngestTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.IngestTopic,
		uowFactory,
		index,
	)

	roomService := service.NewRoomService(uowFactory, rosterCache, natsPub)
	messageService := service.NewMessageService(uowFactory, pipeline, wsHub, natsPub, cfg.Ai.AssistantName, sysLogger)
	goalService := service.NewGoalService(uowFactory)
	knowledgeService := service.NewKnowledgeService(uowFactory)
	documentService := service.NewDocumentService(uowFactory, publisherService, index)

	var auditService service.IEventAuditService
	if natsSub != nil {
		auditService = service.NewEventAuditService(natsSub, sysLogger)
	}

	// WebSocket Handler
	streamHandler := handler.NewRoomStreamHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		RoomController:      controller.NewRoomController(roomService),
		MessageController:   controller.NewMessageController(messageService),
		TaskController:      controller.NewTaskController(taskService),
		GoalController:      controller.NewGoalController(goalService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		DocumentController:  controller.NewDocumentController(documentService),

		ConsumerService:   consumerService,
		EventAuditService: auditService,

		RoomStreamHandler: streamHandler,
		WebSocketHub:      wsHub,
	}
}
