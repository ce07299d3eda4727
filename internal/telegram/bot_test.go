package telegram

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chatbots/internal/auth"
	"chatbots/internal/matcher"
	"chatbots/internal/responder"
	"chatbots/internal/vocab"
)

type fakeSender struct {
	sent  []string
	chats []int64
	err   error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	f.sent = append(f.sent, msg.Text)
	f.chats = append(f.chats, msg.ChatID)
	return tgbotapi.Message{}, f.err
}

func newTestBot(t *testing.T, allowed ...int64) (*Bot, *fakeSender, *vocab.Table) {
	t.Helper()
	tbl, err := vocab.Java()
	if err != nil {
		t.Fatalf("vocab: %v", err)
	}
	svc, err := auth.NewWithRepo(nil, allowed)
	if err != nil {
		t.Fatalf("auth: %v", err)
	}
	fs := &fakeSender{}
	return &Bot{s: fs, responder: responder.New(tbl, matcher.DefaultFuzzyRatio), authSvc: svc}, fs, tbl
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{From: &tgbotapi.User{ID: userID}, Chat: &tgbotapi.Chat{ID: chatID}, Text: text}
}

func commandMessage(userID, chatID int64, cmd string) *tgbotapi.Message {
	m := textMessage(userID, chatID, "/"+cmd)
	m.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd) + 1}}
	return m
}

func TestHandleIncomingMessage_RespondsWithVocabulary(t *testing.T) {
	b, fs, _ := newTestBot(t)
	b.handleIncomingMessage(textMessage(1, 100, "Hello how are you"))

	if len(fs.sent) != 1 {
		t.Fatalf("expected 1 message sent, got %d", len(fs.sent))
	}
	if fs.sent[0] != "Hello! How can I help you today?" {
		t.Fatalf("unexpected reply: %q", fs.sent[0])
	}
	if fs.chats[0] != 100 {
		t.Fatalf("reply sent to chat %d", fs.chats[0])
	}
}

func TestHandleIncomingMessage_UnknownFallsBackToDefault(t *testing.T) {
	b, fs, tbl := newTestBot(t)
	b.handleIncomingMessage(textMessage(1, 100, "what is icecream in java"))

	if len(fs.sent) != 1 || fs.sent[0] != tbl.Response(vocab.DefaultTag) {
		t.Fatalf("expected default reply, got %+v", fs.sent)
	}
}

func TestHandleIncomingMessage_Farewell(t *testing.T) {
	b, fs, tbl := newTestBot(t)
	b.handleIncomingMessage(textMessage(1, 100, "  BYE "))

	if len(fs.sent) != 1 || fs.sent[0] != tbl.Response(vocab.FarewellTag) {
		t.Fatalf("expected farewell reply, got %+v", fs.sent)
	}
}

func TestHandleIncomingMessage_Commands(t *testing.T) {
	b, fs, tbl := newTestBot(t)
	b.handleIncomingMessage(commandMessage(1, 100, "start"))
	b.handleIncomingMessage(commandMessage(1, 100, "help"))

	if len(fs.sent) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(fs.sent))
	}
	if fs.sent[0] != "Hello! (Type 'bye' to finish.)" {
		t.Fatalf("unexpected start reply: %q", fs.sent[0])
	}
	if fs.sent[1] != tbl.Response("help") {
		t.Fatalf("unexpected help reply: %q", fs.sent[1])
	}
}

func TestHandleIncomingMessage_Allowlist(t *testing.T) {
	b, fs, _ := newTestBot(t, 42)
	b.handleIncomingMessage(textMessage(7, 100, "hello"))
	if len(fs.sent) != 0 {
		t.Fatalf("unauthorized user got a reply: %+v", fs.sent)
	}

	b.handleIncomingMessage(textMessage(42, 100, "hello"))
	if len(fs.sent) != 1 {
		t.Fatalf("allowed user got no reply")
	}
}

func TestHandleIncomingMessage_IgnoresEmpty(t *testing.T) {
	b, fs, _ := newTestBot(t)
	b.handleIncomingMessage(textMessage(1, 100, ""))
	b.handleIncomingMessage(&tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hello"})
	if len(fs.sent) != 0 {
		t.Fatalf("expected no replies, got %+v", fs.sent)
	}
}

func TestSendMessage_LogsFailure(t *testing.T) {
	b, fs, _ := newTestBot(t)
	fs.err = errors.New("network down")
	b.sendMessage(1, "text")
	if len(fs.sent) != 1 {
		t.Fatalf("expected send attempt, got %d", len(fs.sent))
	}
}
