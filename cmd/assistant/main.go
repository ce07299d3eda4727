package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"chatbots/internal/assistant"
	"chatbots/internal/cli"
	"chatbots/internal/config"
	"chatbots/internal/console"
	"chatbots/internal/history"
	"chatbots/internal/llm"
	"chatbots/internal/scheduler"
	"chatbots/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.NewAssistant()
	closeLog := setupLogging(cfg.LogFilePath)
	defer closeLog()

	con := console.New(os.Stdout)

	client, err := llm.NewFactory(cfg).CreateClient(cfg.LLMProvider)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	hist := history.NewManager(storage.NewJSONFile[[]history.Turn](cfg.HistoryFilePath))
	if err := hist.Load(); err != nil {
		con.Warning("Could not load conversation history: %v", err)
	} else if n := hist.Len(); n > 0 {
		con.Info("Loaded %d previous conversation turns", n)
	}

	var rec storage.Recorder
	if cfg.JournalFilePath != "" {
		fr, err := storage.NewFileRecorder(cfg.JournalFilePath)
		if err != nil {
			log.Printf("failed to init interaction journal: %v", err)
		} else {
			rec = fr
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Printf("failed to create output dir %s: %v", cfg.OutputDir, err)
	}

	suite := assistant.New(client, hist, rec, assistant.Options{
		Model:        cfg.LLMModel,
		ContextTurns: cfg.ContextTurns,
		Stream:       cfg.Stream,
		OutputDir:    cfg.OutputDir,
		OnChunk:      con.Chunk,
	})

	ctx := context.Background()
	con.Info("Connecting to %s backend at %s...", cfg.LLMProvider, cfg.LLMBaseURL)
	models, err := suite.Connect(ctx)
	if err != nil {
		con.Error("! Failed to connect to the LLM backend: %v", err)
		if cfg.LLMProvider == config.ProviderOllama {
			con.Info("Make sure Ollama is running (https://ollama.ai/download)")
			con.Info("Run 'ollama serve' if installed but not running")
		}
		log.Fatalf("backend unavailable: %v", err)
	}
	con.Success("Connected to %s backend", cfg.LLMProvider)
	con.Info("Available models: %d", len(models))

	sched := scheduler.New()
	sched.SetExportFunction(func(context.Context) error {
		path, err := suite.ExportMarkdown(filepath.Join(cfg.OutputDir, "conversation_autosave.md"))
		if err != nil {
			return err
		}
		log.Printf("autosaved conversation to %s", path)
		return nil
	})
	if err := sched.Start(cfg.AutosaveCron); err != nil {
		log.Printf("autosave disabled: %v", err)
	}
	defer sched.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		con.Newline()
		con.Info("Session terminated by user.")
		sched.Stop()
		closeLog()
		os.Exit(0)
	}()

	d := cli.New(suite, con, os.Stdin)
	d.Banner()
	if err := d.Run(ctx); err != nil {
		log.Printf("failed to read input: %v", err)
	}
}

// setupLogging tees the standard logger to path. The returned func closes the file.
func setupLogging(path string) func() {
	if path == "" {
		return func() {}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("failed to create log dir: %v", err)
			return func() {}
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", path, err)
		return func() {}
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}
