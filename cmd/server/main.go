package main

import (
	"os"
	"os/signal"
	"syscall"

	"butce-backend/internal/config"
	"butce-backend/internal/database"
	"butce-backend/internal/logging"
	"butce-backend/internal/server"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("konfigürasyon okunamadı")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatal().Err(err).Msg("logger kurulamadı")
	}

	if err := database.Init(cfg); err != nil {
		log.Fatal().Err(err).Msg("veritabanı başlatılamadı")
	}

	app := server.New(database.DB, server.Options{CORSOrigins: cfg.CORSOrigins})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("sunucu kapatılıyor")
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("kapatma hatası")
		}
	}()

	log.Info().Str("port", cfg.HTTPPort).Msg("sunucu başlatılıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("sunucu başlatılamadı")
	}
}
