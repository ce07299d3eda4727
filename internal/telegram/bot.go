package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatbots/internal/auth"
	"chatbots/internal/responder"
	"chatbots/internal/vocab"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers Telegram messages with the canned Java vocabulary.
type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	responder *responder.Responder
	authSvc   *auth.Service
}

// New connects to the Bot API.
func New(botToken string, r *responder.Responder, authSvc *auth.Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)
	return &Bot{api: api, s: api, responder: r, authSvc: authSvc}, nil
}

// Start long-polls updates until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message != nil {
				b.handleIncomingMessage(update.Message)
			}
		}
	}
}

func (b *Bot) handleIncomingMessage(msg *tgbotapi.Message) {
	if msg.From == nil || msg.Text == "" {
		return
	}
	if !b.authSvc.IsAllowed(msg.From.ID) {
		log.Printf("Unauthorized access attempt by user ID: %d, username: @%s", msg.From.ID, msg.From.UserName)
		return
	}
	if err := b.authSvc.Remember(auth.User{
		ID:        msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}); err != nil {
		log.Printf("failed to store user profile: %v", err)
	}
	log.Printf("Incoming message from %d (@%s): %q", msg.From.ID, msg.From.UserName, msg.Text)
	b.sendMessage(msg.Chat.ID, b.reply(msg))
}

func (b *Bot) reply(msg *tgbotapi.Message) string {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			return fmt.Sprintf("Hello! (Type '%s' to finish.)", vocab.Farewell)
		case "help":
			return b.responder.Table().Response("help")
		}
	}
	if responder.IsFarewell(msg.Text) {
		return b.responder.Farewell()
	}
	return b.responder.Respond(msg.Text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}
