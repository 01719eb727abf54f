package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/patrickmn/go-cache"

	"waste-bi-backend/internal/config"
	"waste-bi-backend/internal/csv"
	"waste-bi-backend/internal/db"
	"waste-bi-backend/internal/excel"
	httphandler "waste-bi-backend/internal/http"
	"waste-bi-backend/internal/kvstore"
	"waste-bi-backend/internal/logger"
	"waste-bi-backend/internal/pdf"
	"waste-bi-backend/internal/repository"
	"waste-bi-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	var store kvstore.Store
	if cfg.DB.Path == "" {
		log.Warn().Msg("no DB_PATH configured, using ephemeral in-memory store")
		store = kvstore.NewMemory()
	} else {
		database, err := db.New(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		store = kvstore.New(database)
	}

	truckRepo := repository.NewTruckRepository(store, log)
	if err := truckRepo.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate truck data")
	}
	settingsRepo := repository.NewSettingsRepository(store)

	trucks := service.NewTruckService(truckRepo, settingsRepo, log)

	ttl := time.Duration(cfg.HTTP.CacheTTLSeconds) * time.Second
	respCache := cache.New(ttl, 2*ttl)

	handler := httphandler.NewHandler(trucks, csv.NewExporter(), excel.NewGenerator(), pdf.NewGenerator(), respCache, log)
	router := httphandler.NewRouter(handler, cfg, respCache)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting waste-bi service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
