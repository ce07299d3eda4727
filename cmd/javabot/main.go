package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"chatbots/internal/auth"
	"chatbots/internal/config"
	"chatbots/internal/responder"
	"chatbots/internal/telegram"
	"chatbots/internal/vocab"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.NewResponder()

	table, err := vocab.Load(cfg.VocabPath)
	if err != nil {
		log.Fatalf("failed to load vocabulary: %v", err)
	}
	r := responder.New(table, cfg.FuzzyRatio)

	switch {
	case cfg.GenerateSamples:
		if err := r.GenerateSamples(cfg.SamplesPath, cfg.SampleSkip); err != nil {
			log.Fatalf("failed to generate samples: %v", err)
		}
	case cfg.TelegramBotToken != "":
		var allowRepo auth.Repository
		if cfg.AllowlistFilePath != "" {
			allowRepo = auth.NewFileRepository(cfg.AllowlistFilePath)
		}
		authSvc, err := auth.NewWithRepo(allowRepo, cfg.AllowedUsers)
		if err != nil {
			log.Fatalf("failed to init auth: %v", err)
		}
		if authSvc.Open() {
			log.Printf("Warning: no allowed users configured, the bot answers everyone")
		}
		bot, err := telegram.New(cfg.TelegramBotToken, r, authSvc)
		if err != nil {
			log.Fatalf("failed to create bot: %v", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		bot.Start(ctx)
	default:
		if err := r.Chat(os.Stdin, os.Stdout); err != nil {
			log.Fatalf("console read failed: %v", err)
		}
	}
}
