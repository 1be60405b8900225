package commands

import (
	"errors"
	"testing"

	"restaurante360/internal/testdb"
	"restaurante360/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunBatchCommits(t *testing.T) {
	db := testdb.Open(t)

	tpl := &models.ActivityTemplate{Title: "Limpar coifa", Category: "Cozinha", Frequency: "weekly", CreatedBy: "m1"}
	process := &models.Process{Name: "Fechamento", CreatedBy: "m1"}

	err := RunBatch(db,
		NewCreateCommand(tpl),
		FuncCommand(func(tx *gorm.DB) error {
			process.ActivityIDs = []string{tpl.ID}
			return nil
		}),
		NewCreateCommand(process),
	)
	require.NoError(t, err)

	var stored models.Process
	require.NoError(t, db.First(&stored, "id = ?", process.ID).Error)
	assert.Equal(t, []string{tpl.ID}, []string(stored.ActivityIDs))
}

func TestRunBatchRollsBack(t *testing.T) {
	db := testdb.Open(t)

	tpl := &models.ActivityTemplate{Title: "Limpar coifa", Category: "Cozinha", Frequency: "weekly", CreatedBy: "m1"}
	boom := errors.New("boom")

	err := RunBatch(db,
		NewCreateCommand(tpl),
		FuncCommand(func(tx *gorm.DB) error { return boom }),
	)
	assert.ErrorIs(t, err, boom)

	var count int64
	require.NoError(t, db.Model(&models.ActivityTemplate{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateColumnsCommand(t *testing.T) {
	db := testdb.Open(t)

	tpl := &models.ActivityTemplate{Title: "Limpar coifa", Category: "Cozinha", Frequency: "weekly", CreatedBy: "m1"}
	require.NoError(t, db.Create(tpl).Error)

	require.NoError(t, RunBatch(db, NewUpdateColumnsCommand(tpl, map[string]interface{}{"status": "inactive"})))

	var stored models.ActivityTemplate
	require.NoError(t, db.First(&stored, "id = ?", tpl.ID).Error)
	assert.Equal(t, "inactive", stored.Status)
}
