package tg

import (
	"context"
	"time"

	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"max.ks1230/finance-tracker/internal/model/messages"
)

const (
	defaultUpdateOffset  = 0
	updateTimeoutSeconds = 60
	handleTimeoutSeconds = 5
)

type tokenGetter interface {
	Token() string
}

type Client struct {
	client *tgbotapi.BotAPI
}

func New(tokenGetter tokenGetter) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(tokenGetter.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	return &Client{client}, nil
}

// SendMessage replies into the chat the command came from.
func (c *Client) SendMessage(text string, chatID int64) error {
	_, err := c.client.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

func (c *Client) ListenUpdates(ctx context.Context, msgModel *messages.Service) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = updateTimeoutSeconds

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for commands")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop listening for commands")
			return
		case update := <-updates:
			c.listenOnce(ctx, update, msgModel)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, msgModel *messages.Service) {
	if update.Message == nil {
		return
	}
	logger.Info("incoming command",
		zap.String("user", update.Message.From.UserName),
		zap.String("text", update.Message.Text))

	ctx, cancel := context.WithTimeout(ctx, time.Second*handleTimeoutSeconds)
	defer cancel()

	err := msgModel.HandleIncomingMessage(ctx, messages.Message{
		Text:   update.Message.Text,
		UserID: update.Message.Chat.ID,
	})
	if err != nil {
		logger.Error("error processing message", zap.Error(err))
	}
}
