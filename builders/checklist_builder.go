package builders

import (
	"fmt"
	"strings"
	"time"

	"restaurante360/constants"
	apperrors "restaurante360/errors"
	"restaurante360/models"

	"github.com/google/uuid"
)

// ChecklistBuilder materializes a checklist step by step. Tasks are
// snapshots: title, description and photo flag are copied from the template
// at build time.
type ChecklistBuilder struct {
	checklist *models.Checklist
	now       time.Time
	err       error
}

func NewChecklistBuilder(now time.Time) *ChecklistBuilder {
	return &ChecklistBuilder{
		checklist: &models.Checklist{
			ID:      uuid.NewString(),
			Status:  models.ChecklistOpen,
			Version: 1,
			Tasks:   []models.TaskInstance{},
		},
		now: now,
	}
}

// WithAssignment sets who works the checklist and when.
func (b *ChecklistBuilder) WithAssignment(assignedTo, date, shift string) *ChecklistBuilder {
	b.checklist.AssignedTo = assignedTo
	b.checklist.Date = date
	b.checklist.Shift = shift
	return b
}

// WithProcess adds one task per activity id of the process, in order.
// templates must hold every referenced template keyed by id.
func (b *ChecklistBuilder) WithProcess(process *models.Process, templates map[string]models.ActivityTemplate) *ChecklistBuilder {
	if b.err != nil {
		return b
	}
	var missing []string
	tasks := make([]models.TaskInstance, 0, len(process.ActivityIDs))
	for _, id := range process.ActivityIDs {
		tpl, ok := templates[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		tasks = append(tasks, b.newTask(tpl.ID, tpl.Title, tpl.Description, tpl.RequiresPhoto))
	}
	if len(missing) > 0 {
		b.err = apperrors.NewAppError(apperrors.ErrCodeTemplateNotFound,
			fmt.Sprintf("Atividades não encontradas: %s", strings.Join(missing, ", ")), nil)
		return b
	}
	b.checklist.ProcessID = process.ID
	b.checklist.ProcessName = process.Name
	b.checklist.Tasks = append(b.checklist.Tasks, tasks...)
	return b
}

// WithOneOffTask adds a single task that has no template behind it.
func (b *ChecklistBuilder) WithOneOffTask(title, description string, requiresPhoto bool) *ChecklistBuilder {
	if b.err != nil {
		return b
	}
	b.checklist.ProcessName = constants.OneOffProcessPrefix + title
	b.checklist.Tasks = append(b.checklist.Tasks,
		b.newTask(constants.OneOffTemplateID, title, description, requiresPhoto))
	return b
}

func (b *ChecklistBuilder) CreatedBy(userID string) *ChecklistBuilder {
	b.checklist.CreatedBy = userID
	return b
}

// Build returns the checklist or the first error recorded by a step.
func (b *ChecklistBuilder) Build() (*models.Checklist, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.checklist.Tasks) == 0 {
		return nil, apperrors.Validation("O checklist precisa de pelo menos uma tarefa")
	}
	if b.checklist.AssignedTo == "" || b.checklist.Date == "" || b.checklist.Shift == "" {
		return nil, apperrors.Validation("Responsável, data e turno são obrigatórios")
	}
	return b.checklist, nil
}

func (b *ChecklistBuilder) newTask(templateID, title, description string, requiresPhoto bool) models.TaskInstance {
	return models.TaskInstance{
		ID:                 uuid.NewString(),
		ChecklistID:        b.checklist.ID,
		ActivityTemplateID: templateID,
		Title:              title,
		Description:        description,
		RequiresPhoto:      requiresPhoto,
		Status:             models.TaskPending,
		CreatedAt:          b.now,
		UpdatedAt:          b.now,
	}
}
