package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/xavierca1/linkedin-tracker/internal/infra/database"
	"github.com/xavierca1/linkedin-tracker/internal/infra/integration/heyreach"
	"github.com/xavierca1/linkedin-tracker/internal/usecase"
)

const defaultBaseURL = "https://api.heyreach.io/api/public"

func main() {
	godotenv.Load()

	campaignID := flag.String("campaign-id", os.Getenv("HEYREACH_CAMPAIGN_ID"), "campaign to backfill (overrides HEYREACH_CAMPAIGN_ID)")
	dryRun := flag.Bool("dry-run", false, "show what would be backfilled without writing")
	flag.Parse()

	apiKey := os.Getenv("HEYREACH_API_KEY")
	if apiKey == "" {
		log.Fatal("HEYREACH_API_KEY not set")
	}
	if *campaignID == "" {
		log.Fatal("campaign ID not provided (use -campaign-id or set HEYREACH_CAMPAIGN_ID)")
	}

	baseURL := os.Getenv("HEYREACH_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	client := heyreach.NewClient(apiKey, baseURL)
	pipeline := usecase.NewIngestEventUseCase(database.NewIngestStore(db))
	backfill := usecase.NewBackfillUseCase(client, pipeline)

	log.Printf("starting backfill for campaign %s (dry-run=%t)", *campaignID, *dryRun)

	result, err := backfill.Execute(context.Background(), *campaignID, *dryRun)
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}

	log.Println("============================================================")
	log.Println("Backfill Summary")
	log.Println("============================================================")
	log.Printf("Total leads in campaign:          %d", result.TotalLeads)
	log.Printf("Leads with accepted connections:  %d", result.AcceptedLeads)
	log.Printf("New leads backfilled:             %d", result.Backfilled)
	log.Printf("Already existed:                  %d", result.AlreadyExisted)
	if result.Skipped > 0 {
		log.Printf("Skipped (invalid records):        %d", result.Skipped)
	}
	if result.DryRun {
		log.Println("DRY RUN - no changes were made to the database")
	}
}
