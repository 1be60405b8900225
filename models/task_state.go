package models

import (
	"errors"
	"time"
)

var (
	ErrPhotoRequired     = errors.New("task requires photo evidence")
	ErrTaskAlreadyDone   = errors.New("task already done")
	ErrTaskNotApplicable = errors.New("task already marked not applicable")
)

// Completion carries what the actor supplies when finishing a task.
type Completion struct {
	ActorID   string
	At        time.Time
	PhotoURLs []string
	Feedback  string
}

// TaskState is the transition table of a single task.
type TaskState interface {
	Complete(task *TaskInstance, c Completion) error
	MarkNotApplicable(task *TaskInstance, c Completion) error
}

// PendingTaskState accepts both terminal transitions.
type PendingTaskState struct{}

func (s *PendingTaskState) Complete(task *TaskInstance, c Completion) error {
	if task.RequiresPhoto && len(nonEmpty(c.PhotoURLs)) == 0 {
		return ErrPhotoRequired
	}
	at := c.At
	task.Status = TaskDone
	task.CompletedAt = &at
	task.CompletedBy = c.ActorID
	task.PhotoURLs = nonEmpty(c.PhotoURLs)
	if c.Feedback != "" {
		task.Feedback = c.Feedback
	}
	task.UpdatedAt = at
	return nil
}

func (s *PendingTaskState) MarkNotApplicable(task *TaskInstance, c Completion) error {
	task.Status = TaskNotApplicable
	task.CompletedBy = c.ActorID
	if c.Feedback != "" {
		task.Feedback = c.Feedback
	}
	task.UpdatedAt = c.At
	return nil
}

// DoneTaskState is terminal.
type DoneTaskState struct{}

func (s *DoneTaskState) Complete(task *TaskInstance, c Completion) error {
	return ErrTaskAlreadyDone
}

func (s *DoneTaskState) MarkNotApplicable(task *TaskInstance, c Completion) error {
	return ErrTaskAlreadyDone
}

// NotApplicableTaskState is terminal.
type NotApplicableTaskState struct{}

func (s *NotApplicableTaskState) Complete(task *TaskInstance, c Completion) error {
	return ErrTaskNotApplicable
}

func (s *NotApplicableTaskState) MarkNotApplicable(task *TaskInstance, c Completion) error {
	return ErrTaskNotApplicable
}

// GetTaskState returns the state for a task status. Unknown values are
// treated as pending.
func GetTaskState(status TaskStatus) TaskState {
	switch status {
	case TaskDone:
		return &DoneTaskState{}
	case TaskNotApplicable:
		return &NotApplicableTaskState{}
	default:
		return &PendingTaskState{}
	}
}

func nonEmpty(urls []string) []string {
	var out []string
	for _, u := range urls {
		if u != "" {
			out = append(out, u)
		}
	}
	return out
}
