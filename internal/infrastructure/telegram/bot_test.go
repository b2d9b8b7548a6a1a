package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/menu"
)

type fakeMeals struct {
	today time.Time
	meals map[string]string
	err   error
}

func (f fakeMeals) Today() time.Time { return f.today }

func (f fakeMeals) Meal(_ context.Context, date time.Time, period domain.Period) (domain.Entry, error) {
	if f.err != nil {
		return domain.Entry{}, f.err
	}
	meal, ok := f.meals[domain.Key(date, period)]
	if !ok {
		return domain.Entry{}, menu.ErrNotFound
	}
	return domain.Entry{Date: date, Period: period, Meal: meal}, nil
}

type recordingSender struct {
	sent []tgbotapi.MessageConfig
}

func (r *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		r.sent = append(r.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func testMeals() fakeMeals {
	return fakeMeals{
		today: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		meals: map[string]string{
			"2026-02-10-lunch":  "Beef lasagne\nGarlic bread",
			"2026-02-14-brunch": menu.BrunchText,
		},
	}
}

func TestReply(t *testing.T) {
	t.Parallel()

	b := newBot(&tgbotapi.BotAPI{}, &recordingSender{}, testMeals(), nil, nil)

	tests := []struct {
		in     string
		want   string
		answer bool
	}{
		{"/meal lunch", "2026-02-10 lunch:\nBeef lasagne\nGarlic bread", true},
		{"/meal@CateringBot 2026/02/14 Brunch", "2026-02-14 brunch:\n" + menu.BrunchText, true},
		{"/meal 2026-02-11 dinner", "Meal not found for 2026-02-11 dinner", true},
		{"/meal 2026-13-01 lunch", "Invalid date format", true},
		{"/meal", "Usage:", true},
		{"/help", "Usage:", true},
		{"hello there", "", false},
		{"/weather", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := b.reply(context.Background(), tt.in)
		if ok != tt.answer {
			t.Fatalf("reply(%q) ok = %v, want %v", tt.in, ok, tt.answer)
		}
		if !strings.HasPrefix(got, tt.want) {
			t.Fatalf("reply(%q) = %q, want prefix %q", tt.in, got, tt.want)
		}
	}
}

func TestReplyUpstreamFailure(t *testing.T) {
	t.Parallel()

	meals := testMeals()
	meals.err = errors.New("menu data unavailable")
	b := newBot(&tgbotapi.BotAPI{}, &recordingSender{}, meals, nil, nil)

	got, ok := b.reply(context.Background(), "/meal lunch")
	if !ok || !strings.HasPrefix(got, "Failed to fetch menu data") {
		t.Fatalf("unexpected reply %q", got)
	}
}

func postUpdate(t *testing.T, b *Bot, body string) int {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/telegram/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	b.ServeHTTP(rec, req)
	return rec.Code
}

func TestWebhookRepliesToAllowedChat(t *testing.T) {
	t.Parallel()

	out := &recordingSender{}
	b := newBot(&tgbotapi.BotAPI{}, out, testMeals(), []int64{42}, nil)

	update := `{"update_id":1,"message":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"/meal lunch"}}`
	if code := postUpdate(t, b, update); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if len(out.sent) != 1 || out.sent[0].ChatID != 42 || !strings.Contains(out.sent[0].Text, "Beef lasagne") {
		t.Fatalf("unexpected sent messages %+v", out.sent)
	}

	blocked := `{"update_id":2,"message":{"message_id":8,"date":0,"chat":{"id":99,"type":"private"},"text":"/meal lunch"}}`
	if code := postUpdate(t, b, blocked); code != http.StatusOK {
		t.Fatalf("unexpected status %d", code)
	}
	if len(out.sent) != 1 {
		t.Fatalf("chat 99 must be ignored, sent %d messages", len(out.sent))
	}

	if code := postUpdate(t, b, "{not json"); code != http.StatusBadRequest {
		t.Fatalf("malformed update should be rejected, got %d", code)
	}
}
