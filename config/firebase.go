package config

import (
	"context"
	"fmt"

	"restaurante360/services/logger"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// ConnectFirebase returns nil when no credentials file is configured.
func ConnectFirebase(ctx context.Context, credentialsFile string, log logger.Logger) (*firebase.App, error) {
	if credentialsFile == "" {
		log.Info("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return nil, nil
	}
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase: %w", err)
	}
	log.Info("Firebase initialized")
	return app, nil
}
