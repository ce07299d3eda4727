package config

import (
	"log"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOllama LLMProvider = "ollama"
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

// Responder configures the keyword/phrase chatbot binaries.
type Responder struct {
	GenerateSamples bool    `env:"GENERATE_SAMPLES" envDefault:"false"`
	SamplesPath     string  `env:"SAMPLES_PATH" envDefault:"chatbot_samples.txt"`
	SampleSkip      int     `env:"SAMPLE_SKIP" envDefault:"4"`
	FuzzyRatio      float64 `env:"FUZZY_RATIO" envDefault:"0.3"`
	VocabPath       string  `env:"VOCAB_PATH"`

	// Telegram (optional)
	TelegramBotToken  string  `env:"TELEGRAM_BOT_TOKEN"`
	AllowedUsers      []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AllowlistFilePath string  `env:"ALLOWLIST_FILE_PATH"`
}

// Assistant configures the LLM session assistant.
type Assistant struct {
	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"ollama"`
	LLMModel         string      `env:"LLM_MODEL" envDefault:"llama3.2"`
	LLMBaseURL       string      `env:"LLM_BASE_URL" envDefault:"http://localhost:11434/v1"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// Conversation
	ContextTurns int  `env:"CONTEXT_TURNS" envDefault:"5"`
	Stream       bool `env:"STREAM" envDefault:"false"`

	// Storage
	HistoryFilePath string `env:"HISTORY_FILE_PATH" envDefault:"conversation_history.json"`
	OutputDir       string `env:"OUTPUT_DIR" envDefault:"llm_outputs"`
	LogFilePath     string `env:"LOG_FILE_PATH" envDefault:"ollama_interaction.log"`
	JournalFilePath string `env:"JOURNAL_FILE_PATH" envDefault:"llm_outputs/interactions.jsonl"`

	// Cron spec for periodic markdown export; empty disables it.
	AutosaveCron string `env:"AUTOSAVE_CRON"`
}

func NewResponder() *Responder {
	cfg := &Responder{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

func NewAssistant() *Assistant {
	cfg := &Assistant{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}
