package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/logging"
	"MenuScanner/internal/menu"
)

const usage = "Usage: /meal <YYYY-MM-DD> <period> or /meal <period> for today.\nPeriods: breakfast, brunch, lunch, dinner."

// MealQuerier is the part of the catalog the bot needs.
type MealQuerier interface {
	Meal(ctx context.Context, date time.Time, period domain.Period) (domain.Entry, error)
	Today() time.Time
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot answers /meal commands delivered through a webhook.
type Bot struct {
	api     *tgbotapi.BotAPI
	out     sender
	meals   MealQuerier
	allowed map[int64]bool
	logger  *slog.Logger
}

// NewBot authorizes the token and, when webhookURL is set, registers it.
func NewBot(token, webhookURL string, meals MealQuerier, allowedChats []int64, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram api: %w", err)
	}
	b := newBot(api, api, meals, allowedChats, logger)
	b.logger.Info("telegram authorized", "account", api.Self.UserName)

	if webhookURL != "" {
		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			return nil, fmt.Errorf("build webhook %s: %w", webhookURL, err)
		}
		if _, err := api.Request(wh); err != nil {
			return nil, fmt.Errorf("set webhook %s: %w", webhookURL, err)
		}
		b.logger.Info("telegram webhook registered", "url", webhookURL)
	}
	return b, nil
}

func newBot(api *tgbotapi.BotAPI, out sender, meals MealQuerier, allowedChats []int64, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = logging.Discard()
	}
	allowed := make(map[int64]bool, len(allowedChats))
	for _, id := range allowedChats {
		allowed[id] = true
	}
	return &Bot{api: api, out: out, meals: meals, allowed: allowed, logger: logger}
}

// ServeHTTP decodes one webhook update and replies to it. Telegram always gets
// a 200 for well-formed updates so it does not redeliver them.
func (b *Bot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("bad telegram update", "error", err)
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}
	if len(b.allowed) > 0 && !b.allowed[msg.Chat.ID] {
		b.logger.Warn("telegram chat not allowed", "chat_id", msg.Chat.ID)
		return
	}

	text, ok := b.reply(r.Context(), msg.Text)
	if !ok {
		return
	}
	if _, err := b.out.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		b.logger.Error("telegram send failed", "chat_id", msg.Chat.ID, "error", err)
	}
}

// reply builds the answer for a message; ok is false for messages the bot ignores.
func (b *Bot) reply(ctx context.Context, text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}

	switch commandName(fields[0]) {
	case "start", "help":
		return usage, true
	case "meal":
	default:
		return "", false
	}

	var dateArg, periodArg string
	switch args := fields[1:]; len(args) {
	case 1:
		periodArg = args[0]
	case 2:
		dateArg, periodArg = args[0], args[1]
	default:
		return usage, true
	}

	date := b.meals.Today()
	if dateArg != "" {
		parsed, err := menu.ParseDate(dateArg)
		if err != nil {
			return "Invalid date format. Use YYYY-MM-DD or YYYY/MM/DD.", true
		}
		date = parsed
	}
	period := menu.NormalizePeriod(periodArg)

	entry, err := b.meals.Meal(ctx, date, period)
	switch {
	case err == nil:
		return fmt.Sprintf("%s %s:\n%s", domain.FormatDate(entry.Date), entry.Period, entry.Meal), true
	case errors.Is(err, menu.ErrNotFound):
		return fmt.Sprintf("Meal not found for %s %s", domain.FormatDate(date), period), true
	default:
		b.logger.Error("telegram meal lookup failed", "error", err)
		return "Failed to fetch menu data, try again later.", true
	}
}

// commandName strips the slash and an optional @botname suffix.
func commandName(token string) string {
	if !strings.HasPrefix(token, "/") {
		return ""
	}
	name, _, _ := strings.Cut(token[1:], "@")
	return strings.ToLower(name)
}
