package notification

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// TelegramNotifier delivers push messages to the devices a user registered
// through the token-sync endpoint. A user without registered devices is
// skipped silently; a transport failure is returned so callers can count it
// and retry on the next sweep.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	tokens ports.PushTokenRepo
	logger logger.Logger
}

func NewTelegramNotifier(token string, tokens ports.PushTokenRepo, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, push notifications disabled")
		return &TelegramNotifier{bot: nil, tokens: tokens, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, tokens: tokens, logger: logger}, nil
}

func (n *TelegramNotifier) SendToUser(ctx context.Context, userID string, msg domain.Message) error {
	chatIDs, err := n.tokens.ListByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("list push tokens: %w", err)
	}
	if len(chatIDs) == 0 {
		n.logger.Debug("push skipped (no registered devices)",
			logger.String("user_id", userID),
			logger.String("template", msg.Template),
		)
		return nil
	}

	return n.deliver(ctx, chatIDs, msg)
}

func (n *TelegramNotifier) Broadcast(ctx context.Context, msg domain.Message) error {
	chatIDs, err := n.tokens.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list push tokens: %w", err)
	}

	return n.deliver(ctx, chatIDs, msg)
}

func (n *TelegramNotifier) deliver(ctx context.Context, chatIDs []int64, msg domain.Message) error {
	if n.bot == nil {
		n.logger.Debug("push skipped (bot disabled)", logger.String("title", msg.Title))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text := renderMessage(msg)

	var firstErr error
	for _, chatID := range chatIDs {
		out := tgbotapi.NewMessage(chatID, text)
		out.ParseMode = "Markdown"

		if _, err := n.bot.Send(out); err != nil {
			n.logger.Error("failed to send push notification",
				logger.Int64("chat_id", chatID),
				logger.String("template", msg.Template),
				logger.String("error", err.Error()),
			)
			if firstErr == nil {
				firstErr = fmt.Errorf("send push: %w", err)
			}
		}
	}

	return firstErr
}

func renderMessage(msg domain.Message) string {
	text := fmt.Sprintf("*%s*\n\n%s", msg.Title, msg.Body)
	if msg.Template == domain.TemplateEventReminder {
		text += fmt.Sprintf("\n\nVenue: %s\nStarts: %s", msg.Venue, msg.StartTime)
	}
	return text
}
