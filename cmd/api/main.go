package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/santecare/pharmacare-backend/internal/adapters/cache"
	"github.com/santecare/pharmacare-backend/internal/adapters/database"
	"github.com/santecare/pharmacare-backend/internal/adapters/events"
	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/adapters/search"
	"github.com/santecare/pharmacare-backend/internal/adapters/session"
	"github.com/santecare/pharmacare-backend/internal/api/handlers"
	"github.com/santecare/pharmacare-backend/internal/api/routes"
	"github.com/santecare/pharmacare-backend/internal/application/services"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/postgres"
	redisclient "github.com/santecare/pharmacare-backend/internal/infrastructure/clients/redis"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/typesense"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
	"github.com/santecare/pharmacare-backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client; the application works without it
	redisCli, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		redisCli = nil
	} else {
		defer redisCli.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisCli != nil {
		cacheProvider = cache.NewRedisAdapter(redisCli)
	}

	// Initialize repositories per the configured storage driver. The
	// telepharmacy and records collections are in-process under both
	// drivers; only the durable collections move to PostgreSQL.
	var (
		medicineRepo repositories.MedicineRepository
		saleRepo     repositories.SaleRepository
		patientRepo  repositories.PatientRepository
		pharmacyRepo repositories.PharmacyRepository
		requestRepo  repositories.PharmacyRequestRepository
		sysUserRepo  repositories.SystemUserRepository
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
		}
		defer pgClient.Close()
		log.Println("PostgreSQL client initialized successfully")

		medicineRepo = database.NewMedicineAdapter(pgClient)
		saleRepo = database.NewSaleAdapter(pgClient)
		patientRepo = database.NewPatientAdapter(pgClient)
		pharmacyRepo = database.NewPharmacyAdapter(pgClient)
		requestRepo = database.NewPharmacyRequestAdapter(pgClient)
		sysUserRepo = database.NewSystemUserAdapter(pgClient)
	default:
		medicineAdapter := memory.NewMedicineAdapter()
		medicineRepo = medicineAdapter
		saleRepo = memory.NewSaleAdapter(medicineAdapter)
		patientRepo = memory.NewPatientAdapter()
		pharmacyRepo = memory.NewPharmacyAdapter()
		requestRepo = memory.NewPharmacyRequestAdapter()
		sysUserRepo = memory.NewSystemUserAdapter()
	}

	// Wrap medicines with caching if Redis is available
	if cacheProvider != nil {
		medicineRepo = database.NewCachedMedicineAdapter(medicineRepo, cacheProvider)
		log.Println("Medicine repository wrapped with caching layer")
	}

	// Initialize Typesense search index
	var searchRepo repositories.MedicineSearchRepository
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := typesenseClient.InitSchema(context.Background()); err != nil {
				log.Printf("Warning: Failed to init Typesense schema: %v", err)
			}
			searchRepo = adapter
			log.Println("Typesense client initialized successfully")
		}
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisCli != nil {
		eventBus = events.NewRedisEventBus(redisCli)
	} else {
		eventBus = events.NewMemoryEventBus()
	}
	log.Println("Event bus initialized successfully")

	// Sessions persist in Redis when available, otherwise in process
	var sessionRepo repositories.SessionRepository
	if redisCli != nil {
		sessionRepo = session.NewRedisAdapter(redisCli, cfg.Auth.SessionKey, cfg.Auth.SessionTTL)
	} else {
		sessionRepo = memory.NewSessionAdapter()
	}

	// Initialize services
	authService := services.NewAuthService(memory.NewCredentialAdapter(), sessionRepo, cfg.Auth.LoginLatency)
	if err := authService.Restore(ctx); err != nil {
		log.Printf("Warning: Failed to restore session: %v", err)
	}

	inventoryService := services.NewInventoryService(medicineRepo, saleRepo, searchRepo, eventBus, metrics, cfg.PharmacyID)

	recordsService := services.NewRecordsService(
		memory.NewOrderAdapter(),
		memory.NewPrescriptionAdapter(),
		patientRepo,
		memory.NewInvoiceAdapter(),
	)

	telepharmacyService := services.NewTelepharmacyService(
		memory.NewWaitingRoomAdapter(),
		memory.NewConsultationAdapter(),
		memory.NewChatMessageAdapter(),
		memory.NewDigitalPrescriptionAdapter(),
		memory.NewFollowUpAdapter(),
		memory.NewAvailabilityAdapter(),
		memory.NewNotificationAdapter(),
		eventBus,
		metrics,
		cfg.PharmacyID,
	)

	platformService := services.NewPlatformService(pharmacyRepo, requestRepo, sysUserRepo, memory.NewSubscriptionAdapter())

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	medicineHandler := handlers.NewMedicineHandler(inventoryService)
	saleHandler := handlers.NewSaleHandler(inventoryService)
	recordsHandler := handlers.NewRecordsHandler(recordsService)
	telepharmacyHandler := handlers.NewTelepharmacyHandler(telepharmacyService)
	platformHandler := handlers.NewPlatformHandler(platformService)
	sseHandler := handlers.NewSSEHandler(eventBus)

	// Set up router
	router := routes.NewRouter(
		authHandler,
		medicineHandler,
		saleHandler,
		recordsHandler,
		telepharmacyHandler,
		platformHandler,
		sseHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if err := eventBus.Close(); err != nil {
		log.Printf("Error closing event bus: %v", err)
	}

	log.Println("Server stopped")
}
