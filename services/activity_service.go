package services

import (
	"context"
	"errors"
	"strings"

	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"

	"gorm.io/gorm"
)

// ActivityService manages activity templates. Templates are scoped to the
// manager who created them.
type ActivityService struct {
	opts Options
}

func NewActivityService(opts Options) *ActivityService {
	return &ActivityService{opts: opts.withDefaults()}
}

func (s *ActivityService) Create(ctx context.Context, actor *Session, req dto.CreateActivityRequest) (*models.ActivityTemplate, error) {
	activity := &models.ActivityTemplate{
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Category:      req.Category,
		Frequency:     req.Frequency,
		IsRecurring:   req.IsRecurring,
		RequiresPhoto: req.RequiresPhoto,
		CreatedBy:     actor.UserID,
	}
	if err := s.opts.DB.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, apperrors.DB("Erro ao criar atividade", err)
	}
	s.afterChange(ctx, activity, notification.ActionCreated)
	return activity, nil
}

// List returns the caller's templates, filtered and, when a query is given,
// ranked by fuzzy relevance.
func (s *ActivityService) List(ctx context.Context, actor *Session, filter dto.ActivityFilter) ([]models.ActivityTemplate, error) {
	all, err := s.owned(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ActivityTemplate, 0, len(all))
	for _, a := range all {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, a)
	}
	if filter.Query != "" {
		out = RankActivities(filter.Query, out)
	}
	return out, nil
}

func (s *ActivityService) owned(ctx context.Context, managerID string) ([]models.ActivityTemplate, error) {
	var activities []models.ActivityTemplate
	err := s.opts.Cache.remember(ctx, ActivitiesCacheKey(managerID), &activities, func() error {
		return s.opts.DB.WithContext(ctx).
			Where("created_by = ?", managerID).
			Order("created_at DESC").
			Find(&activities).Error
	})
	if err != nil {
		return nil, apperrors.DB("Erro ao listar atividades", err)
	}
	return activities, nil
}

func (s *ActivityService) Get(ctx context.Context, actor *Session, id string) (*models.ActivityTemplate, error) {
	var activity models.ActivityTemplate
	err := s.opts.DB.WithContext(ctx).First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Atividade não encontrada")
		}
		return nil, apperrors.DB("Erro ao buscar atividade", err)
	}
	if activity.CreatedBy != actor.UserID {
		return nil, apperrors.NotFound("Atividade não encontrada")
	}
	return &activity, nil
}

// Update merges the non-nil fields of req. Existing checklists keep their
// snapshot of the old values.
func (s *ActivityService) Update(ctx context.Context, actor *Session, id string, req dto.UpdateActivityRequest) (*models.ActivityTemplate, error) {
	activity, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		activity.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		activity.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		activity.Category = *req.Category
	}
	if req.Frequency != nil {
		activity.Frequency = *req.Frequency
	}
	if req.IsRecurring != nil {
		activity.IsRecurring = *req.IsRecurring
	}
	if req.RequiresPhoto != nil {
		activity.RequiresPhoto = *req.RequiresPhoto
	}
	if err := s.opts.DB.WithContext(ctx).Save(activity).Error; err != nil {
		return nil, apperrors.DB("Erro ao atualizar atividade", err)
	}
	s.afterChange(ctx, activity, notification.ActionUpdated)
	return activity, nil
}

func (s *ActivityService) SetStatus(ctx context.Context, actor *Session, id, status string) (*models.ActivityTemplate, error) {
	activity, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.opts.DB.WithContext(ctx).Model(activity).Update("status", status).Error; err != nil {
		return nil, apperrors.DB("Erro ao atualizar status da atividade", err)
	}
	activity.Status = status
	s.afterChange(ctx, activity, notification.ActionUpdated)
	return activity, nil
}

// loadTemplates fetches templates by id, restricted to managerID, keyed by
// id. Missing ids are simply absent from the result.
func loadTemplates(db *gorm.DB, managerID string, ids []string) (map[string]models.ActivityTemplate, error) {
	out := make(map[string]models.ActivityTemplate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var found []models.ActivityTemplate
	if err := db.Where("id IN ? AND created_by = ?", ids, managerID).Find(&found).Error; err != nil {
		return nil, apperrors.DB("Erro ao buscar atividades", err)
	}
	for _, a := range found {
		out[a.ID] = a
	}
	return out, nil
}

func (s *ActivityService) afterChange(ctx context.Context, activity *models.ActivityTemplate, action string) {
	s.opts.Cache.Delete(ctx, ActivitiesCacheKey(activity.CreatedBy))
	s.opts.publish(notification.Event{
		Collection: "activities",
		Action:     action,
		ID:         activity.ID,
		Data:       activity,
		Audience:   []string{activity.CreatedBy},
	})
}
