package services

import (
	"context"

	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"
)

type CheckInService struct {
	opts  Options
	users *UserService
}

func NewCheckInService(opts Options, users *UserService) *CheckInService {
	return &CheckInService{opts: opts.withDefaults(), users: users}
}

// CheckIn appends a shift-start record for the caller. Without an explicit
// shift it is derived from the local hour.
func (s *CheckInService) CheckIn(ctx context.Context, actor *Session, req dto.CheckInRequest) (*models.CheckIn, error) {
	now := s.opts.now()
	shift := req.Shift
	if shift == "" {
		shift = constants.ShiftForHour(now.Hour())
	}
	checkIn := &models.CheckIn{
		UserID:    actor.UserID,
		Date:      now.Format(constants.DateLayout),
		Shift:     shift,
		CreatedAt: now,
	}
	if err := s.opts.DB.WithContext(ctx).Create(checkIn).Error; err != nil {
		return nil, apperrors.DB("Erro ao registrar check-in", err)
	}
	s.opts.publish(notification.Event{
		Collection: "checkins",
		Action:     notification.ActionCreated,
		ID:         checkIn.ID,
		Data:       checkIn,
		Audience:   []string{actor.UserID},
		Managers:   true,
	})
	return checkIn, nil
}

// List returns check-ins of a day (today when empty). Collaborators only
// see their own.
func (s *CheckInService) List(ctx context.Context, actor *Session, filter dto.CheckInFilter) ([]dto.CheckInResponse, error) {
	q := s.opts.DB.WithContext(ctx).Model(&models.CheckIn{})
	if actor.IsManager() {
		date := filter.Date
		if date == "" {
			date = s.opts.today()
		}
		q = q.Where("date = ?", date)
		if filter.UserID != "" {
			q = q.Where("user_id = ?", filter.UserID)
		}
	} else {
		q = q.Where("user_id = ?", actor.UserID)
		if filter.Date != "" {
			q = q.Where("date = ?", filter.Date)
		}
	}

	var checkIns []models.CheckIn
	if err := q.Order("created_at DESC").Find(&checkIns).Error; err != nil {
		return nil, apperrors.DB("Erro ao listar check-ins", err)
	}

	dir, err := s.users.Directory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CheckInResponse, 0, len(checkIns))
	for _, c := range checkIns {
		name := constants.UnknownUserName
		if u, ok := dir[c.UserID]; ok {
			name = u.Name
		}
		out = append(out, dto.CheckInResponse{
			ID:        c.ID,
			UserID:    c.UserID,
			UserName:  name,
			Date:      c.Date,
			Shift:     c.Shift,
			CreatedAt: c.CreatedAt.In(s.opts.Location).Format("15:04"),
		})
	}
	return out, nil
}

// CheckedInToday reports whether userID has any check-in today.
func (s *CheckInService) CheckedInToday(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := s.opts.DB.WithContext(ctx).Model(&models.CheckIn{}).
		Where("user_id = ? AND date = ?", userID, s.opts.today()).
		Count(&count).Error
	if err != nil {
		return false, apperrors.DB("Erro ao verificar check-in", err)
	}
	return count > 0, nil
}

// CountToday counts all check-ins of today.
func (s *CheckInService) CountToday(ctx context.Context) (int, error) {
	var count int64
	err := s.opts.DB.WithContext(ctx).Model(&models.CheckIn{}).
		Where("date = ?", s.opts.today()).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.DB("Erro ao contar check-ins", err)
	}
	return int(count), nil
}
