package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurante360/commands"
	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"

	"gorm.io/gorm"
)

// ProcessService manages processes (routines): ordered bundles of the
// caller's activity templates.
type ProcessService struct {
	opts Options
}

func NewProcessService(opts Options) *ProcessService {
	return &ProcessService{opts: opts.withDefaults()}
}

func (s *ProcessService) Create(ctx context.Context, actor *Session, req dto.CreateProcessRequest) (*models.Process, error) {
	if err := s.checkTemplates(ctx, actor.UserID, req.ActivityIDs); err != nil {
		return nil, err
	}
	process := &models.Process{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		ActivityIDs: req.ActivityIDs,
		IsActive:    true,
		CreatedBy:   actor.UserID,
	}
	if err := s.opts.DB.WithContext(ctx).Create(process).Error; err != nil {
		return nil, apperrors.DB("Erro ao criar processo", err)
	}
	s.publish(process, notification.ActionCreated)
	return process, nil
}

// CreateRoutine creates one template per task and the process referencing
// them in a single transaction.
func (s *ProcessService) CreateRoutine(ctx context.Context, actor *Session, req dto.CreateRoutineRequest) (*dto.RoutineResponse, error) {
	activities := make([]models.ActivityTemplate, len(req.Tasks))
	cmds := make([]commands.Command, 0, len(req.Tasks)+1)
	ids := make([]string, 0, len(req.Tasks))
	for i, task := range req.Tasks {
		activities[i] = models.ActivityTemplate{
			Title:         strings.TrimSpace(task.Title),
			Description:   fmt.Sprintf("Tarefa da rotina: %s", strings.TrimSpace(req.Name)),
			Category:      constants.CategoryOutro,
			Frequency:     constants.FrequencyOnDemand,
			IsRecurring:   true,
			RequiresPhoto: task.RequiresPhoto,
			Status:        constants.ActivityStatusActive,
			CreatedBy:     actor.UserID,
		}
		cmds = append(cmds, commands.NewCreateCommand(&activities[i]))
	}

	process := &models.Process{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedBy:   actor.UserID,
	}
	cmds = append(cmds, commands.FuncCommand(func(tx *gorm.DB) error {
		for _, a := range activities {
			ids = append(ids, a.ID)
		}
		process.ActivityIDs = ids
		return tx.Create(process).Error
	}))

	if err := commands.RunBatch(s.opts.DB.WithContext(ctx), cmds...); err != nil {
		return nil, apperrors.DB("Erro ao criar rotina", err)
	}

	s.opts.Cache.Delete(ctx, ActivitiesCacheKey(actor.UserID))
	s.publish(process, notification.ActionCreated)
	s.opts.Logger.Info("routine %s created with %d tasks", process.ID, len(activities))
	return &dto.RoutineResponse{Process: *process, Activities: activities}, nil
}

func (s *ProcessService) List(ctx context.Context, actor *Session, onlyActive bool) ([]models.Process, error) {
	var processes []models.Process
	q := s.opts.DB.WithContext(ctx).Where("created_by = ?", actor.UserID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("created_at DESC").Find(&processes).Error; err != nil {
		return nil, apperrors.DB("Erro ao listar processos", err)
	}
	return processes, nil
}

func (s *ProcessService) Get(ctx context.Context, actor *Session, id string) (*models.Process, error) {
	var process models.Process
	if err := s.opts.DB.WithContext(ctx).First(&process, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Processo não encontrado")
		}
		return nil, apperrors.DB("Erro ao buscar processo", err)
	}
	if process.CreatedBy != actor.UserID {
		return nil, apperrors.NotFound("Processo não encontrado")
	}
	return &process, nil
}

func (s *ProcessService) Update(ctx context.Context, actor *Session, id string, req dto.UpdateProcessRequest) (*models.Process, error) {
	process, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		process.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		process.Description = strings.TrimSpace(*req.Description)
	}
	if len(req.ActivityIDs) > 0 {
		if err := s.checkTemplates(ctx, actor.UserID, req.ActivityIDs); err != nil {
			return nil, err
		}
		process.ActivityIDs = req.ActivityIDs
	}
	if err := s.opts.DB.WithContext(ctx).Save(process).Error; err != nil {
		return nil, apperrors.DB("Erro ao atualizar processo", err)
	}
	s.publish(process, notification.ActionUpdated)
	return process, nil
}

func (s *ProcessService) SetActive(ctx context.Context, actor *Session, id string, active bool) (*models.Process, error) {
	process, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.opts.DB.WithContext(ctx).Model(process).Update("is_active", active).Error; err != nil {
		return nil, apperrors.DB("Erro ao atualizar status do processo", err)
	}
	process.IsActive = active
	s.publish(process, notification.ActionUpdated)
	return process, nil
}

// checkTemplates fails with TEMPLATE_NOT_FOUND listing every id that does
// not exist or belongs to another manager.
func (s *ProcessService) checkTemplates(ctx context.Context, managerID string, ids []string) error {
	found, err := loadTemplates(s.opts.DB.WithContext(ctx), managerID, ids)
	if err != nil {
		return err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewAppError(apperrors.ErrCodeTemplateNotFound,
			"Atividades não encontradas: "+strings.Join(missing, ", "), nil)
	}
	return nil
}

func (s *ProcessService) publish(process *models.Process, action string) {
	s.opts.publish(notification.Event{
		Collection: "processes",
		Action:     action,
		ID:         process.ID,
		Data:       process,
		Audience:   []string{process.CreatedBy},
	})
}
