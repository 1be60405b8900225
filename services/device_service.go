package services

import (
	"context"

	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"

	"gorm.io/gorm/clause"
)

// DeviceService keeps the FCM registration tokens of each user.
type DeviceService struct {
	opts Options
}

func NewDeviceService(opts Options) *DeviceService {
	return &DeviceService{opts: opts.withDefaults()}
}

// Register stores token for the caller. A token moves to the latest user
// that registers it.
func (s *DeviceService) Register(ctx context.Context, actor *Session, token string) (*models.DeviceToken, error) {
	device := &models.DeviceToken{UserID: actor.UserID, Token: token}
	err := s.opts.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "updated_at"}),
	}).Create(device).Error
	if err != nil {
		return nil, apperrors.DB("Erro ao registrar dispositivo", err)
	}
	var stored models.DeviceToken
	if err := s.opts.DB.WithContext(ctx).First(&stored, "token = ?", token).Error; err != nil {
		return nil, apperrors.DB("Erro ao registrar dispositivo", err)
	}
	return &stored, nil
}

// Notify pushes msg to every device of userIDs. Failures are logged.
func (s *DeviceService) Notify(ctx context.Context, userIDs []string, msg notification.Push) {
	pushToUsers(ctx, s.opts, userIDs, msg)
}

func pushToUsers(ctx context.Context, opts Options, userIDs []string, msg notification.Push) {
	if len(userIDs) == 0 {
		return
	}
	var tokens []string
	err := opts.DB.WithContext(ctx).Model(&models.DeviceToken{}).
		Where("user_id IN ?", userIDs).
		Pluck("token", &tokens).Error
	if err != nil {
		opts.Logger.Error("load device tokens: %v", err)
		return
	}
	if len(tokens) == 0 {
		return
	}
	if err := opts.Pusher.Push(ctx, tokens, msg); err != nil {
		opts.Logger.Error("push %q to %d devices: %v", msg.Title, len(tokens), err)
	}
}
