package bootstrap

import (
	"context"
	"log"
	"os"

	"dev-assessment-be/internal/config"
	"dev-assessment-be/internal/controller"
	"dev-assessment-be/internal/pkg/logger"
	"dev-assessment-be/internal/service"
	"dev-assessment-be/internal/websocket"
	"dev-assessment-be/pkg/evidence"
	"dev-assessment-be/pkg/github"
	"dev-assessment-be/pkg/llm/factory"
	"dev-assessment-be/pkg/synthesis"

	pktNats "dev-assessment-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	AssessmentController controller.IAssessmentController

	// Background Services (Exposed for main.go to run)
	StreamConsumerService service.IStreamConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Evidence Layer
	ghClient := github.NewClient(cfg.GitHub.BaseURL, cfg.GitHub.Token)
	toolset := evidence.NewToolset(ghClient)
	catalog := evidence.NewCatalog(toolset)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	orchestrator := synthesis.NewOrchestrator(
		llmProvider,
		catalog,
		log.New(os.Stdout, "[synthesis] ", log.LstdFlags),
		cfg.Ai.Temperature,
		cfg.Ai.MaxTokens,
	)

	// 3.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 4. Services
	streamPublisher := service.NewStreamPublisher(cfg.App.StreamTopic, pubSub)
	streamConsumer := service.NewStreamConsumerService(pubSub, cfg.App.StreamTopic, wsHub, wsLogger)

	assessmentService := service.NewAssessmentService(orchestrator, streamPublisher, natsPub, sysLogger)

	// 5. Controllers
	return &Container{
		AssessmentController:  controller.NewAssessmentController(assessmentService, wsHub, sysLogger),
		StreamConsumerService: streamConsumer,
		WebSocketHub:          wsHub,
	}
}
