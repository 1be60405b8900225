package builders

import (
	"testing"
	"time"

	"restaurante360/constants"
	apperrors "restaurante360/errors"
	"restaurante360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func templates() map[string]models.ActivityTemplate {
	return map[string]models.ActivityTemplate{
		"tpl-1": {ID: "tpl-1", Title: "Limpar bancadas", Description: "Higienizar todas as bancadas", RequiresPhoto: true},
		"tpl-2": {ID: "tpl-2", Title: "Conferir estoque", Description: "Contar itens do estoque seco"},
	}
}

func TestBuildFromProcess(t *testing.T) {
	process := &models.Process{ID: "p1", Name: "Abertura", ActivityIDs: []string{"tpl-2", "tpl-1"}}

	c, err := NewChecklistBuilder(now).
		WithAssignment("u1", "2026-10-19", constants.ShiftMorning).
		WithProcess(process, templates()).
		CreatedBy("m1").
		Build()
	require.NoError(t, err)

	assert.Equal(t, models.ChecklistOpen, c.Status)
	assert.Equal(t, 1, c.Version)
	assert.Equal(t, "Abertura", c.ProcessName)
	assert.Equal(t, "p1", c.ProcessID)
	require.Len(t, c.Tasks, 2)

	assert.Equal(t, "tpl-2", c.Tasks[0].ActivityTemplateID, "task order follows the process")
	assert.Equal(t, "tpl-1", c.Tasks[1].ActivityTemplateID)
	assert.True(t, c.Tasks[1].RequiresPhoto)

	seen := map[string]bool{}
	for _, task := range c.Tasks {
		assert.Equal(t, models.TaskPending, task.Status)
		assert.Equal(t, c.ID, task.ChecklistID)
		assert.NotEqual(t, task.ActivityTemplateID, task.ID)
		assert.False(t, seen[task.ID])
		seen[task.ID] = true
	}
}

func TestBuildSnapshotsTemplates(t *testing.T) {
	tpls := templates()
	process := &models.Process{ID: "p1", Name: "Abertura", ActivityIDs: []string{"tpl-1"}}

	c, err := NewChecklistBuilder(now).
		WithAssignment("u1", "2026-10-19", constants.ShiftMorning).
		WithProcess(process, tpls).
		Build()
	require.NoError(t, err)

	tpl := tpls["tpl-1"]
	tpl.Title = "Novo título"
	tpls["tpl-1"] = tpl
	assert.Equal(t, "Limpar bancadas", c.Tasks[0].Title)
}

func TestBuildMissingTemplateFails(t *testing.T) {
	process := &models.Process{ID: "p1", Name: "Abertura", ActivityIDs: []string{"tpl-1", "gone"}}

	c, err := NewChecklistBuilder(now).
		WithAssignment("u1", "2026-10-19", constants.ShiftMorning).
		WithProcess(process, templates()).
		Build()
	assert.Nil(t, c)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTemplateNotFound))
	assert.Contains(t, err.Error(), "gone")
}

func TestBuildOneOff(t *testing.T) {
	c, err := NewChecklistBuilder(now).
		WithAssignment("u1", "2026-10-19", constants.ShiftNight).
		WithOneOffTask("Trocar lâmpada", "", false).
		CreatedBy("m1").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Tarefa Pontual: Trocar lâmpada", c.ProcessName)
	assert.Empty(t, c.ProcessID)
	require.Len(t, c.Tasks, 1)
	assert.Equal(t, constants.OneOffTemplateID, c.Tasks[0].ActivityTemplateID)
}

func TestBuildRequiresAssignment(t *testing.T) {
	_, err := NewChecklistBuilder(now).WithOneOffTask("Trocar lâmpada", "", false).Build()
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}
