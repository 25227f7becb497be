package main

import (
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"devcloud/internal/config"
	"devcloud/internal/handler"
	"devcloud/internal/handler/sse"
	"devcloud/internal/metrics"
	"devcloud/internal/middleware"
	"devcloud/internal/repository/memory"
	"devcloud/internal/seed"
	"devcloud/internal/service/assist"
	hubService "devcloud/internal/service/hub"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOutput io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOutput = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"ai_provider", cfg.AIProvider,
		"simulated_latency", cfg.SimulatedLatency.String(),
	)

	// Load and check the reference dataset
	dataset, err := seed.Load(cfg.SeedPath)
	if err != nil {
		log.Fatalf("Failed to load seed data: %v", err)
	}
	snapshot := dataset.Snapshot()
	report := hubService.ValidateSnapshot(dataset.Services, dataset.Projects, snapshot)
	for _, issue := range report.Issues {
		logger.Warn("seed issue",
			"severity", issue.Severity,
			"file_id", issue.FileID,
			"message", issue.Message,
		)
	}
	if !report.OK() {
		log.Fatalf("Seed data has %d error(s)", report.Errors())
	}

	// Entity store
	store := memory.NewStore(dataset.Services, dataset.Projects, snapshot, logger)
	metrics.SetStoreSize(len(snapshot.Files), len(snapshot.LocalDrives))
	logger.Info("entity store ready",
		"services", len(dataset.Services),
		"projects", len(dataset.Projects),
		"files", len(snapshot.Files),
	)

	// Services
	clock := hubService.SystemClock{}
	recorder := hubService.NewRecorder(clock, logger)
	gateway := hubService.NewMutationGateway(
		store,
		recorder,
		clock,
		hubService.FixedLatency(cfg.SimulatedLatency),
		cfg.ReadmeBackendID,
		logger,
	)

	// AI collaborator
	generator, err := assist.NewTextGenerator(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to set up AI provider: %v", err)
	}
	assistant := assist.NewService(generator, assist.DefaultAssistantName, logger)

	workspace := hubService.NewWorkspace(store, gateway, recorder, assistant, logger)
	agents := hubService.NewAgentHub(dataset.Agents, recorder, logger)

	// Notification stream
	notifications := hubService.NewNotificationStream(recorder, logger)
	notifications.Start()
	defer notifications.Stop()

	// Routes
	mux := handler.NewRouter(workspace, notifications, agents, sse.DefaultConfig(), logger)
	if cfg.Debug {
		mux.Handle("GET /metrics", metrics.Handler())
		logger.Warn("Debug route registered: GET /metrics")
	}

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Metrics → Routes
	h = middleware.Metrics(logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Last-Event-ID", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
