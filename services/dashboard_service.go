package services

import (
	"context"
	"fmt"
	"strconv"

	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"
	"restaurante360/services/notification"
)

const recentChecklistLimit = 5

type DashboardService struct {
	opts       Options
	users      *UserService
	checkins   *CheckInService
	checklists *ChecklistService
}

func NewDashboardService(opts Options, users *UserService, checkins *CheckInService, checklists *ChecklistService) *DashboardService {
	return &DashboardService{
		opts:       opts.withDefaults(),
		users:      users,
		checkins:   checkins,
		checklists: checklists,
	}
}

// Manager summarizes the caller's checklists for today.
func (s *DashboardService) Manager(ctx context.Context, actor *Session) (*dto.ManagerDashboard, error) {
	today := s.opts.today()
	db := s.opts.DB.WithContext(ctx)

	var todays []models.Checklist
	if err := db.Where("created_by = ? AND date = ?", actor.UserID, today).Find(&todays).Error; err != nil {
		return nil, apperrors.DB("Erro ao carregar checklists do dia", err)
	}

	overdue, err := s.overdueTasks(ctx, actor.UserID, today)
	if err != nil {
		return nil, err
	}

	checkins, err := s.checkins.CountToday(ctx)
	if err != nil {
		return nil, err
	}

	var recent []models.Checklist
	err = db.Where("created_by = ?", actor.UserID).
		Order("date DESC").Order("created_at DESC").
		Limit(recentChecklistLimit).
		Find(&recent).Error
	if err != nil {
		return nil, apperrors.DB("Erro ao carregar checklists recentes", err)
	}

	return &dto.ManagerDashboard{
		Date:             today,
		ChecklistsToday:  len(todays),
		OverdueTasks:     overdue,
		CheckinsToday:    checkins,
		StatusChart:      BuildReport(todays, nil).ChecklistStatus,
		RecentChecklists: dto.NewChecklistResponses(recent),
	}, nil
}

// Collaborator returns today's tasks and check-in state of the caller.
func (s *DashboardService) Collaborator(ctx context.Context, actor *Session) (*dto.CollaboratorDashboard, error) {
	today := s.opts.today()
	checkedIn, err := s.checkins.CheckedInToday(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.checklists.MyTasks(ctx, actor, today)
	if err != nil {
		return nil, err
	}
	out := &dto.CollaboratorDashboard{
		Date:       today,
		CheckedIn:  checkedIn,
		TodayTasks: tasks,
	}
	for _, t := range tasks {
		switch t.Status {
		case models.TaskPending:
			out.PendingCount++
		case models.TaskDone:
			out.DoneCount++
		}
	}
	if out.TodayTasks == nil {
		out.TodayTasks = []dto.MyTask{}
	}
	return out, nil
}

// overdueTasks counts pending tasks on checklists dated before today. An
// empty managerID counts across every manager.
func (s *DashboardService) overdueTasks(ctx context.Context, managerID, today string) (int, error) {
	q := s.opts.DB.WithContext(ctx).
		Where("date < ? AND status <> ?", today, string(models.ChecklistCompleted))
	if managerID != "" {
		q = q.Where("created_by = ?", managerID)
	}
	var open []models.Checklist
	if err := q.Find(&open).Error; err != nil {
		return 0, apperrors.DB("Erro ao contar tarefas atrasadas", err)
	}
	count := 0
	for _, c := range open {
		for _, t := range c.Tasks {
			if t.Status == models.TaskPending {
				count++
			}
		}
	}
	return count, nil
}

// OverdueSweep counts overdue pending tasks per manager and alerts them.
func (s *DashboardService) OverdueSweep(ctx context.Context) (int, error) {
	managers, err := s.users.ManagerIDs(ctx)
	if err != nil {
		return 0, err
	}
	today := s.opts.today()
	total := 0
	for _, managerID := range managers {
		count, err := s.overdueTasks(ctx, managerID, today)
		if err != nil {
			return total, err
		}
		if count == 0 {
			continue
		}
		total += count
		s.opts.publish(notification.Event{
			Collection: "dashboard",
			Action:     notification.ActionUpdated,
			ID:         managerID,
			Data:       map[string]int{"overdueTasks": count},
			Audience:   []string{managerID},
		})
		pushToUsers(ctx, s.opts, []string{managerID}, notification.Push{
			Title: "Tarefas atrasadas",
			Body:  fmt.Sprintf("Existem %d tarefas pendentes de dias anteriores", count),
			Data:  map[string]string{"overdueTasks": strconv.Itoa(count)},
		})
	}
	s.opts.Logger.Info("overdue sweep: %d pending tasks across %d managers", total, len(managers))
	return total, nil
}
