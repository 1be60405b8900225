package notification

import (
	"context"
	"fmt"

	"restaurante360/services/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// fcmBatchLimit is the maximum number of tokens per multicast request.
const fcmBatchLimit = 500

type Push struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher delivers mobile push notifications to device tokens.
type Pusher interface {
	Push(ctx context.Context, tokens []string, msg Push) error
}

type FirebasePusher struct {
	client *messaging.Client
	logger logger.Logger
}

// NewPusher returns an FCM pusher, or a no-op one when app is nil.
func NewPusher(ctx context.Context, app *firebase.App, log logger.Logger) (Pusher, error) {
	if app == nil {
		return NopPusher{}, nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &FirebasePusher{client: client, logger: log}, nil
}

func (p *FirebasePusher) Push(ctx context.Context, tokens []string, msg Push) error {
	for start := 0; start < len(tokens); start += fcmBatchLimit {
		end := start + fcmBatchLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		resp, err := p.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
			Tokens: tokens[start:end],
			Data:   msg.Data,
			Notification: &messaging.Notification{
				Title: msg.Title,
				Body:  msg.Body,
			},
		})
		if err != nil {
			return fmt.Errorf("error sending multicast: %w", err)
		}
		if resp.FailureCount > 0 {
			p.logger.Error("FCM delivered %d, failed %d", resp.SuccessCount, resp.FailureCount)
		}
	}
	return nil
}

type NopPusher struct{}

func (NopPusher) Push(context.Context, []string, Push) error { return nil }
