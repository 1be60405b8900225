package services

import (
	"context"
	"testing"

	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignAndCompleteFlow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "ana", constants.RoleCozinha)

	a := env.seedTemplate(t, manager, "A", false)
	b := env.seedTemplate(t, manager, "B", false)
	process := env.seedProcess(t, manager, "Abertura", a, b)

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID:  process.ID,
		AssignedTo: worker.UserID,
		Date:       testToday,
		Shift:      constants.ShiftMorning,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChecklistOpen, checklist.Status)
	require.Len(t, checklist.Tasks, 2)
	for _, task := range checklist.Tasks {
		assert.Equal(t, models.TaskPending, task.Status)
	}
	assert.Len(t, env.pub.collection("checklists"), 1)

	res, err := env.checklists.CompleteTask(ctx, worker, checklist.ID, checklist.Tasks[0].ID, dto.CompleteTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.ChecklistInProgress, res.Checklist.Status)
	assert.Equal(t, 2, res.Checklist.Version)
	assert.Equal(t, 50.0, res.Checklist.Progress)
	assert.Equal(t, worker.UserID, res.Task.CompletedBy)
	require.NotNil(t, res.Task.CompletedAt)
	assert.True(t, res.Task.CompletedAt.Equal(testNow))

	res, err = env.checklists.CompleteTask(ctx, worker, checklist.ID, checklist.Tasks[1].ID, dto.CompleteTaskRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.ChecklistCompleted, res.Checklist.Status)
	assert.Equal(t, 3, res.Checklist.Version)

	stored, err := env.checklists.Get(ctx, manager, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ChecklistCompleted, stored.Status)
	assert.Equal(t, 100.0, stored.Progress())

	_, err = env.checklists.CompleteTask(ctx, worker, checklist.ID, checklist.Tasks[0].ID, dto.CompleteTaskRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidTransition))
}

func TestCompleteRequiresPhoto(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "bruno", constants.RoleBar)
	process := env.seedProcess(t, manager, "Limpeza", env.seedTemplate(t, manager, "Limpar bar", true))

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftNight,
	})
	require.NoError(t, err)
	taskID := checklist.Tasks[0].ID

	_, err = env.checklists.CompleteTask(ctx, worker, checklist.ID, taskID, dto.CompleteTaskRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodePhotoRequired))

	stored, err := env.checklists.Get(ctx, worker, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Version, "rejected completion must not write")
	assert.Equal(t, models.TaskPending, stored.Tasks[0].Status)

	res, err := env.checklists.CompleteTask(ctx, worker, checklist.ID, taskID, dto.CompleteTaskRequest{
		PhotoURLs: []string{"https://res.cloudinary.com/demo/bar.jpg"},
		Feedback:  "Bar limpo",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://res.cloudinary.com/demo/bar.jpg"}, res.Task.PhotoURLs)
	assert.Equal(t, models.ChecklistCompleted, res.Checklist.Status)
}

func TestStaleVersionConflicts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "carla", constants.RoleGarcon)
	process := env.seedProcess(t, manager, "Salão",
		env.seedTemplate(t, manager, "Arrumar mesas", false),
		env.seedTemplate(t, manager, "Repor guardanapos", false))

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftAfternoon,
	})
	require.NoError(t, err)

	v1 := 1
	_, err = env.checklists.CompleteTask(ctx, worker, checklist.ID, checklist.Tasks[0].ID, dto.CompleteTaskRequest{ExpectedVersion: &v1})
	require.NoError(t, err)

	// A second device still holding version 1.
	_, err = env.checklists.MarkTaskNotApplicable(ctx, worker, checklist.ID, checklist.Tasks[1].ID, dto.NotApplicableRequest{ExpectedVersion: &v1})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))

	stored, err := env.checklists.Get(ctx, worker, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TaskDone, stored.Tasks[0].Status, "first write survives")
	assert.Equal(t, models.TaskPending, stored.Tasks[1].Status)
}

func TestVersionGuardRejectsConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "davi", constants.RolePia)
	process := env.seedProcess(t, manager, "Pia", env.seedTemplate(t, manager, "Lavar louça", false))

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftMorning,
	})
	require.NoError(t, err)

	fn := func(state models.TaskState, task *models.TaskInstance, at models.Completion) error {
		// Another writer commits between our read and our write.
		require.NoError(t, env.opts.DB.Model(&models.Checklist{}).
			Where("id = ?", checklist.ID).
			Update("version", 5).Error)
		return state.Complete(task, at)
	}
	_, err = env.checklists.transition(ctx, worker, checklist.ID, checklist.Tasks[0].ID, nil, fn)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeConflict))
}

func TestTransitionPermissions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "eva", constants.RoleProducao)
	other := env.seedUser(t, "fabio", constants.RoleProducao)
	process := env.seedProcess(t, manager, "Produção", env.seedTemplate(t, manager, "Porcionar carnes", false))

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftMorning,
	})
	require.NoError(t, err)

	_, err = env.checklists.CompleteTask(ctx, other, checklist.ID, checklist.Tasks[0].ID, dto.CompleteTaskRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = env.checklists.Get(ctx, other, checklist.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = env.checklists.CompleteTask(ctx, worker, checklist.ID, "missing", dto.CompleteTaskRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	res, err := env.checklists.MarkTaskNotApplicable(ctx, manager, checklist.ID, checklist.Tasks[0].ID, dto.NotApplicableRequest{Feedback: "sem estoque"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskNotApplicable, res.Task.Status)
	assert.Equal(t, models.ChecklistOpen, res.Checklist.Status)
}

func TestAssignFailures(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	otherManager := env.seedUser(t, "gestora", constants.RoleGestor)
	worker := env.seedUser(t, "gabi", constants.RoleCozinha)

	gone := env.seedTemplate(t, manager, "Temporária", false)
	process := env.seedProcess(t, manager, "Abertura", env.seedTemplate(t, manager, "Ligar fornos", false), gone)
	require.NoError(t, env.opts.DB.Delete(gone).Error)

	req := dto.AssignChecklistRequest{ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftMorning}

	_, err := env.checklists.Assign(ctx, manager, req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTemplateNotFound))

	var count int64
	require.NoError(t, env.opts.DB.Model(&models.Checklist{}).Count(&count).Error)
	assert.Zero(t, count, "nothing is written when a template is missing")

	_, err = env.checklists.Assign(ctx, otherManager, req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound), "processes are scoped to their owner")

	req.AssignedTo = "nobody"
	_, err = env.checklists.Assign(ctx, manager, req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestAssignRejectsInactiveTemplates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "gabi", constants.RoleCozinha)

	paused := env.seedTemplate(t, manager, "Limpar coifa", false)
	process := env.seedProcess(t, manager, "Fechamento", env.seedTemplate(t, manager, "Apagar luzes", false), paused)
	_, err := env.activities.SetStatus(ctx, manager, paused.ID, constants.ActivityStatusInactive)
	require.NoError(t, err)

	req := dto.AssignChecklistRequest{ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftNight}
	_, err = env.checklists.Assign(ctx, manager, req)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Contains(t, err.(*apperrors.AppError).Message, "Limpar coifa")

	_, err = env.activities.SetStatus(ctx, manager, paused.ID, constants.ActivityStatusActive)
	require.NoError(t, err)
	checklist, err := env.checklists.Assign(ctx, manager, req)
	require.NoError(t, err)
	assert.Len(t, checklist.Tasks, 2)
}

func TestAssignSnapshotsTemplates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "hugo", constants.RoleCozinha)
	tpl := env.seedTemplate(t, manager, "Conferir validade", false)
	process := env.seedProcess(t, manager, "Estoque", tpl)

	checklist, err := env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftMorning,
	})
	require.NoError(t, err)

	newTitle := "Conferir validade e temperatura"
	requires := true
	_, err = env.activities.Update(ctx, manager, tpl.ID, dto.UpdateActivityRequest{Title: &newTitle, RequiresPhoto: &requires})
	require.NoError(t, err)

	stored, err := env.checklists.Get(ctx, worker, checklist.ID)
	require.NoError(t, err)
	assert.Equal(t, "Conferir validade", stored.Tasks[0].Title)
	assert.False(t, stored.Tasks[0].RequiresPhoto)
}

func TestOneOffAndMyTasks(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	worker := env.seedUser(t, "iris", constants.RoleGarcon)

	checklist, err := env.checklists.CreateOneOff(ctx, manager, dto.OneOffTaskRequest{
		Title: "Trocar lâmpada", AssignedTo: worker.UserID, Date: testToday, Shift: constants.ShiftNight,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tarefa Pontual: Trocar lâmpada", checklist.ProcessName)

	process := env.seedProcess(t, manager, "Salão", env.seedTemplate(t, manager, "Arrumar mesas", false))
	_, err = env.checklists.Assign(ctx, manager, dto.AssignChecklistRequest{
		ProcessID: process.ID, AssignedTo: worker.UserID, Date: "2026-10-18", Shift: constants.ShiftNight,
	})
	require.NoError(t, err)

	tasks, err := env.checklists.MyTasks(ctx, worker, testToday)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, constants.OneOffTemplateID, tasks[0].ActivityTemplateID)
	assert.Equal(t, checklist.ID, tasks[0].ChecklistID)
	assert.Equal(t, constants.ShiftNight, tasks[0].Shift)

	all, err := env.checklists.MyTasks(ctx, worker, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListScopesByRole(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	manager := env.seedUser(t, "gerente", constants.RoleManager)
	otherManager := env.seedUser(t, "gestora", constants.RoleGestor)
	w1 := env.seedUser(t, "joao", constants.RoleCozinha)
	w2 := env.seedUser(t, "kelly", constants.RoleCozinha)

	for _, d := range []string{"2026-10-17", "2026-10-19", "2026-10-18"} {
		_, err := env.checklists.CreateOneOff(ctx, manager, dto.OneOffTaskRequest{Title: "Tarefa " + d, AssignedTo: w1.UserID, Date: d, Shift: constants.ShiftMorning})
		require.NoError(t, err)
	}
	_, err := env.checklists.CreateOneOff(ctx, otherManager, dto.OneOffTaskRequest{Title: "Outra", AssignedTo: w2.UserID, Date: testToday, Shift: constants.ShiftMorning})
	require.NoError(t, err)

	list, total, err := env.checklists.List(ctx, manager, dto.ChecklistFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, "2026-10-19", list[0].Date, "ordered by date descending")
	assert.Equal(t, "2026-10-17", list[2].Date)

	list, total, err = env.checklists.List(ctx, manager, dto.ChecklistFilter{Page: dto.Page{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, list, 1)

	list, _, err = env.checklists.List(ctx, w2, dto.ChecklistFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tarefa Pontual: Outra", list[0].ProcessName)

	list, _, err = env.checklists.List(ctx, manager, dto.ChecklistFilter{Date: "2026-10-18"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
