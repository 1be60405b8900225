package models

// CountDone returns how many tasks are done.
func CountDone(tasks []TaskInstance) int {
	done := 0
	for _, task := range tasks {
		if task.Status == TaskDone {
			done++
		}
	}
	return done
}

// Progress returns the percentage of done tasks, 0 for an empty list.
func Progress(tasks []TaskInstance) float64 {
	if len(tasks) == 0 {
		return 0
	}
	return float64(CountDone(tasks)) / float64(len(tasks)) * 100
}

// RollupStatus derives the checklist status from its tasks. When no task is
// done the current status is kept, so a checklist never moves back to open.
func RollupStatus(current ChecklistStatus, tasks []TaskInstance) ChecklistStatus {
	done := CountDone(tasks)
	switch {
	case len(tasks) > 0 && done == len(tasks):
		return ChecklistCompleted
	case done > 0:
		return ChecklistInProgress
	default:
		return current
	}
}
