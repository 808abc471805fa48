package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/linkedin-tracker/internal/infra/database"
	"github.com/xavierca1/linkedin-tracker/internal/infra/http/handlers"
	"github.com/xavierca1/linkedin-tracker/internal/infra/http/middleware"
	"github.com/xavierca1/linkedin-tracker/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	// 1. Repositories
	prospectRepo := database.NewProspectRepository(db)
	eventRepo := database.NewEventRepository(db)
	ingestStore := database.NewIngestStore(db)

	// 2. UseCases
	pipeline := usecase.NewIngestEventUseCase(ingestStore)

	// 3. Handlers
	healthHandler := handlers.NewHealthHandler(db)
	webhookHandler := handlers.NewWebhookHandler(pipeline)
	statsHandler := handlers.NewStatsHandler(prospectRepo, eventRepo)
	prospectHandler := handlers.NewProspectHandler(prospectRepo, eventRepo)
	eventHandler := handlers.NewEventHandler(eventRepo)

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))

	r.Get("/", handlers.HandleRoot)
	r.Get("/health", healthHandler.Handle)
	r.Post("/webhooks/heyreach", webhookHandler.Handle)
	r.Get("/stats", statsHandler.Handle)
	r.Get("/prospects", prospectHandler.HandleList)
	r.Get("/prospects/{id}", prospectHandler.HandleGet)
	r.Get("/events", eventHandler.HandleList)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("🔥 LinkedIn tracker listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}
