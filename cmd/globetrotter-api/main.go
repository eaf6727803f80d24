// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globetrotter/internal/ai"
	"globetrotter/internal/config"
	httptransport "globetrotter/internal/http"
	"globetrotter/internal/http/handlers"
	"globetrotter/internal/infra"
	"globetrotter/internal/modules/assistant"
	"globetrotter/internal/modules/catalog"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/modules/hotels"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	llm, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer llm.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var places *catalog.PlacesResolver
	if cfg.Maps.APIKey != "" {
		places, err = catalog.NewPlacesResolver(cfg.Maps.APIKey)
		if err != nil {
			log.Printf("places init failed, continuing with DB-only resolution: %v", err)
		}
	}

	catalogStore := catalog.NewStore(dbPool)
	catalogSvc := catalog.NewService(catalogStore, places)

	flightsSvc := flights.NewService(flights.NewClient(cfg.Providers.FlightsURL), redisClient)
	hotelsSvc := hotels.NewService(hotels.NewClient(cfg.Providers.HotelsURL), redisClient)

	assistantSvc := assistant.NewService(llm, catalogSvc, flightsSvc, hotelsSvc)

	turnTimeout := time.Duration(cfg.Assistant.TurnTimeoutSeconds) * time.Second
	assistantHandler := handlers.NewAssistantHandler(assistantSvc, llm, turnTimeout)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(assistantHandler),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
