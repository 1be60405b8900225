package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"restaurante360/builders"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChecklistService struct {
	opts  Options
	users *UserService
}

func NewChecklistService(opts Options, users *UserService) *ChecklistService {
	return &ChecklistService{opts: opts.withDefaults(), users: users}
}

// Assign materializes the caller's process into a checklist for one
// collaborator. Any missing template fails the whole assignment.
func (s *ChecklistService) Assign(ctx context.Context, actor *Session, req dto.AssignChecklistRequest) (*models.Checklist, error) {
	var process models.Process
	if err := s.opts.DB.WithContext(ctx).First(&process, "id = ? AND created_by = ?", req.ProcessID, actor.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Processo não encontrado")
		}
		return nil, apperrors.DB("Erro ao buscar processo", err)
	}
	if !process.IsActive {
		return nil, apperrors.Validation("Processo inativo não pode ser atribuído")
	}
	if err := s.checkAssignee(ctx, req.AssignedTo); err != nil {
		return nil, err
	}

	templates, err := loadTemplates(s.opts.DB.WithContext(ctx), actor.UserID, process.ActivityIDs)
	if err != nil {
		return nil, err
	}
	var inactive []string
	for _, id := range process.ActivityIDs {
		if tpl, ok := templates[id]; ok && !tpl.IsActive() {
			inactive = append(inactive, tpl.Title)
		}
	}
	if len(inactive) > 0 {
		return nil, apperrors.Validation("Atividades inativas no processo: " + strings.Join(inactive, ", "))
	}

	checklist, err := builders.NewChecklistBuilder(s.opts.now()).
		WithAssignment(req.AssignedTo, req.Date, req.Shift).
		WithProcess(&process, templates).
		CreatedBy(actor.UserID).
		Build()
	if err != nil {
		return nil, err
	}
	return s.create(ctx, checklist)
}

// CreateOneOff assigns a single ad-hoc task.
func (s *ChecklistService) CreateOneOff(ctx context.Context, actor *Session, req dto.OneOffTaskRequest) (*models.Checklist, error) {
	if err := s.checkAssignee(ctx, req.AssignedTo); err != nil {
		return nil, err
	}
	checklist, err := builders.NewChecklistBuilder(s.opts.now()).
		WithAssignment(req.AssignedTo, req.Date, req.Shift).
		WithOneOffTask(req.Title, req.Description, req.RequiresPhoto).
		CreatedBy(actor.UserID).
		Build()
	if err != nil {
		return nil, err
	}
	return s.create(ctx, checklist)
}

func (s *ChecklistService) checkAssignee(ctx context.Context, userID string) error {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
			return apperrors.Validation("Colaborador não encontrado")
		}
		return err
	}
	if !user.IsActive {
		return apperrors.Validation("Colaborador desativado não pode receber tarefas")
	}
	return nil
}

func (s *ChecklistService) create(ctx context.Context, checklist *models.Checklist) (*models.Checklist, error) {
	if err := s.opts.DB.WithContext(ctx).Create(checklist).Error; err != nil {
		return nil, apperrors.DB("Erro ao criar checklist", err)
	}
	s.publish(checklist, notification.ActionCreated)
	pushToUsers(ctx, s.opts, []string{checklist.AssignedTo}, notification.Push{
		Title: "Novo checklist",
		Body:  checklist.ProcessName + " (" + checklist.Shift + ", " + checklist.Date + ")",
		Data:  map[string]string{"checklistId": checklist.ID},
	})
	s.opts.Logger.Info("checklist %s assigned to %s with %d tasks", checklist.ID, checklist.AssignedTo, len(checklist.Tasks))
	return checklist, nil
}

// List returns checklists the caller may read: managers see the ones they
// created, everyone else the ones assigned to them.
func (s *ChecklistService) List(ctx context.Context, actor *Session, filter dto.ChecklistFilter) ([]models.Checklist, int, error) {
	page := filter.Page.Normalize()
	scope := func(q *gorm.DB) *gorm.DB {
		if actor.IsManager() {
			q = q.Where("created_by = ?", actor.UserID)
			if filter.AssignedTo != "" {
				q = q.Where("assigned_to = ?", filter.AssignedTo)
			}
		} else {
			q = q.Where("assigned_to = ?", actor.UserID)
		}
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.Date != "" {
			q = q.Where("date = ?", filter.Date)
		}
		if filter.Shift != "" {
			q = q.Where("shift = ?", filter.Shift)
		}
		return q
	}

	var total int64
	if err := s.opts.DB.WithContext(ctx).Model(&models.Checklist{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, apperrors.DB("Erro ao contar checklists", err)
	}
	var checklists []models.Checklist
	err := s.opts.DB.WithContext(ctx).Scopes(scope).
		Order("date DESC").Order("created_at DESC").
		Offset(page.Offset()).Limit(page.Limit).
		Find(&checklists).Error
	if err != nil {
		return nil, 0, apperrors.DB("Erro ao listar checklists", err)
	}
	return checklists, int(total), nil
}

// Get returns a checklist readable by the caller (assignee or creator).
func (s *ChecklistService) Get(ctx context.Context, actor *Session, id string) (*models.Checklist, error) {
	checklist, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canAccess(actor, checklist) {
		return nil, apperrors.Forbidden("Você não tem acesso a este checklist")
	}
	return checklist, nil
}

func (s *ChecklistService) load(ctx context.Context, id string) (*models.Checklist, error) {
	var checklist models.Checklist
	if err := s.opts.DB.WithContext(ctx).First(&checklist, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Checklist não encontrado")
		}
		return nil, apperrors.DB("Erro ao buscar checklist", err)
	}
	return &checklist, nil
}

func canAccess(actor *Session, c *models.Checklist) bool {
	return actor != nil && (c.AssignedTo == actor.UserID || c.CreatedBy == actor.UserID)
}

// MyTasks flattens the caller's assigned tasks with their checklist
// context. An empty date means every date.
func (s *ChecklistService) MyTasks(ctx context.Context, actor *Session, date string) ([]dto.MyTask, error) {
	q := s.opts.DB.WithContext(ctx).Where("assigned_to = ?", actor.UserID)
	if date != "" {
		q = q.Where("date = ?", date)
	}
	var checklists []models.Checklist
	if err := q.Order("date DESC").Order("created_at ASC").Find(&checklists).Error; err != nil {
		return nil, apperrors.DB("Erro ao listar tarefas", err)
	}
	return FlattenTasks(checklists), nil
}

// FlattenTasks lists every task with its parent context, pending first.
func FlattenTasks(checklists []models.Checklist) []dto.MyTask {
	var tasks []dto.MyTask
	for _, c := range checklists {
		for _, t := range c.Tasks {
			tasks = append(tasks, dto.MyTask{
				TaskInstance:    t,
				ProcessName:     c.ProcessName,
				Date:            c.Date,
				Shift:           c.Shift,
				ChecklistStatus: c.Status,
				ChecklistVer:    c.Version,
			})
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Status == models.TaskPending && tasks[j].Status != models.TaskPending
	})
	return tasks
}

func (s *ChecklistService) CompleteTask(ctx context.Context, actor *Session, checklistID, taskID string, req dto.CompleteTaskRequest) (*dto.TaskTransitionResponse, error) {
	return s.transition(ctx, actor, checklistID, taskID, req.ExpectedVersion, func(state models.TaskState, task *models.TaskInstance, at models.Completion) error {
		at.PhotoURLs = req.PhotoURLs
		at.Feedback = req.Feedback
		return state.Complete(task, at)
	})
}

func (s *ChecklistService) MarkTaskNotApplicable(ctx context.Context, actor *Session, checklistID, taskID string, req dto.NotApplicableRequest) (*dto.TaskTransitionResponse, error) {
	return s.transition(ctx, actor, checklistID, taskID, req.ExpectedVersion, func(state models.TaskState, task *models.TaskInstance, at models.Completion) error {
		at.Feedback = req.Feedback
		return state.MarkNotApplicable(task, at)
	})
}

type transitionFunc func(state models.TaskState, task *models.TaskInstance, at models.Completion) error

// transition applies fn to one task and writes the new task array and the
// rolled-up status in a single UPDATE guarded by the checklist version. A
// concurrent write makes the update match no row and yields CONFLICT; the
// caller decides whether to retry.
func (s *ChecklistService) transition(ctx context.Context, actor *Session, checklistID, taskID string, expectedVersion *int, fn transitionFunc) (*dto.TaskTransitionResponse, error) {
	checklist, err := s.load(ctx, checklistID)
	if err != nil {
		return nil, err
	}
	if !canAccess(actor, checklist) {
		return nil, apperrors.Forbidden("Somente o responsável pode alterar esta tarefa")
	}
	if expectedVersion != nil && *expectedVersion != checklist.Version {
		return nil, conflict()
	}

	idx := checklist.FindTask(taskID)
	if idx < 0 {
		return nil, apperrors.NotFound("Tarefa não encontrada")
	}

	tasks := make([]models.TaskInstance, len(checklist.Tasks))
	copy(tasks, checklist.Tasks)
	task := &tasks[idx]

	now := s.opts.now()
	if err := fn(models.GetTaskState(task.Status), task, models.Completion{ActorID: actor.UserID, At: now}); err != nil {
		return nil, transitionError(err)
	}

	status := models.RollupStatus(checklist.Status, tasks)
	res := s.opts.DB.WithContext(ctx).Model(&models.Checklist{}).
		Where("id = ? AND version = ?", checklist.ID, checklist.Version).
		Updates(map[string]interface{}{
			"tasks":      datatypes.JSONSlice[models.TaskInstance](tasks),
			"status":     string(status),
			"version":    checklist.Version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return nil, apperrors.DB("Erro ao atualizar tarefa", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, conflict()
	}

	previous := checklist.Status
	checklist.Tasks = tasks
	checklist.Status = status
	checklist.Version++
	checklist.UpdatedAt = now

	s.publish(checklist, notification.ActionUpdated)
	if status == models.ChecklistCompleted && previous != models.ChecklistCompleted {
		pushToUsers(ctx, s.opts, []string{checklist.CreatedBy}, notification.Push{
			Title: "Checklist concluído",
			Body:  checklist.ProcessName + " (" + checklist.Shift + ", " + checklist.Date + ")",
			Data:  map[string]string{"checklistId": checklist.ID},
		})
	}

	return &dto.TaskTransitionResponse{
		Checklist: dto.NewChecklistResponse(*checklist),
		Task:      checklist.Tasks[idx],
	}, nil
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, models.ErrPhotoRequired):
		return apperrors.NewAppError(apperrors.ErrCodePhotoRequired, "Esta tarefa exige ao menos uma foto", err)
	case errors.Is(err, models.ErrTaskAlreadyDone):
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition, "A tarefa já foi concluída", err)
	case errors.Is(err, models.ErrTaskNotApplicable):
		return apperrors.NewAppError(apperrors.ErrCodeInvalidTransition, "A tarefa foi marcada como não aplicável", err)
	default:
		return err
	}
}

func conflict() *apperrors.AppError {
	return apperrors.NewAppError(apperrors.ErrCodeConflict, "O checklist foi alterado por outra pessoa. Recarregue e tente novamente.", nil)
}

func (s *ChecklistService) publish(c *models.Checklist, action string) {
	s.opts.publish(notification.Event{
		Collection: "checklists",
		Action:     action,
		ID:         c.ID,
		Data:       dto.NewChecklistResponse(*c),
		Audience:   []string{c.AssignedTo, c.CreatedBy},
	})
}
