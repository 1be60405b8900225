package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingTaskComplete(t *testing.T) {
	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

	t.Run("sets completion fields", func(t *testing.T) {
		task := TaskInstance{ID: "t1", Status: TaskPending}
		err := GetTaskState(task.Status).Complete(&task, Completion{ActorID: "u1", At: at, Feedback: "ok"})
		require.NoError(t, err)

		assert.Equal(t, TaskDone, task.Status)
		require.NotNil(t, task.CompletedAt)
		assert.True(t, task.CompletedAt.Equal(at))
		assert.Equal(t, "u1", task.CompletedBy)
		assert.Equal(t, "ok", task.Feedback)
	})

	t.Run("photo required without photos leaves task untouched", func(t *testing.T) {
		task := TaskInstance{ID: "t1", Status: TaskPending, RequiresPhoto: true}
		before := task

		err := GetTaskState(task.Status).Complete(&task, Completion{ActorID: "u1", At: at, PhotoURLs: []string{""}})
		assert.ErrorIs(t, err, ErrPhotoRequired)
		assert.Equal(t, before, task)
	})

	t.Run("photo required with photo succeeds", func(t *testing.T) {
		task := TaskInstance{ID: "t1", Status: TaskPending, RequiresPhoto: true}
		err := GetTaskState(task.Status).Complete(&task, Completion{ActorID: "u1", At: at, PhotoURLs: []string{"https://img/1.jpg"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"https://img/1.jpg"}, task.PhotoURLs)
	})
}

func TestPendingTaskNotApplicable(t *testing.T) {
	task := TaskInstance{ID: "t1", Status: TaskPending, RequiresPhoto: true}
	err := GetTaskState(task.Status).MarkNotApplicable(&task, Completion{ActorID: "u2", At: time.Now(), Feedback: "equipamento em manutenção"})
	require.NoError(t, err)

	assert.Equal(t, TaskNotApplicable, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, "u2", task.CompletedBy)
}

func TestTerminalStatesRejectTransitions(t *testing.T) {
	first := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	done := TaskInstance{ID: "t1", Status: TaskDone, CompletedAt: &first}
	assert.ErrorIs(t, GetTaskState(done.Status).Complete(&done, Completion{At: time.Now()}), ErrTaskAlreadyDone)
	assert.ErrorIs(t, GetTaskState(done.Status).MarkNotApplicable(&done, Completion{At: time.Now()}), ErrTaskAlreadyDone)
	assert.True(t, done.CompletedAt.Equal(first), "completion timestamp is set only once")

	na := TaskInstance{ID: "t2", Status: TaskNotApplicable}
	assert.ErrorIs(t, GetTaskState(na.Status).Complete(&na, Completion{At: time.Now()}), ErrTaskNotApplicable)
	assert.ErrorIs(t, GetTaskState(na.Status).MarkNotApplicable(&na, Completion{At: time.Now()}), ErrTaskNotApplicable)
}
