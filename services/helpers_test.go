package services

import (
	"sync"
	"testing"
	"time"

	"restaurante360/constants"
	"restaurante360/internal/testdb"
	"restaurante360/models"
	"restaurante360/services/logger"
	"restaurante360/services/notification"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

const testToday = "2026-10-19"

type recordingPublisher struct {
	mu     sync.Mutex
	events []notification.Event
}

func (p *recordingPublisher) Publish(evt notification.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) collection(name string) []notification.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []notification.Event
	for _, e := range p.events {
		if e.Collection == name {
			out = append(out, e)
		}
	}
	return out
}

type testEnv struct {
	opts       Options
	pub        *recordingPublisher
	provider   *LocalProvider
	users      *UserService
	auth       *AuthService
	activities *ActivityService
	processes  *ProcessService
	checklists *ChecklistService
	checkins   *CheckInService
	reports    *ReportService
	dashboard  *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	pub := &recordingPublisher{}
	clock := func() time.Time { return testNow }
	opts := Options{
		DB:        testdb.Open(t),
		Logger:    logger.Nop{},
		Publisher: pub,
		Clock:     clock,
		Location:  time.UTC,
	}
	provider := NewLocalProvider("segredo-de-teste", time.Hour, clock)
	env := &testEnv{opts: opts, pub: pub, provider: provider}
	env.users = NewUserService(opts, provider)
	env.auth = NewAuthService(opts, env.users, provider)
	env.activities = NewActivityService(opts)
	env.processes = NewProcessService(opts)
	env.checklists = NewChecklistService(opts, env.users)
	env.checkins = NewCheckInService(opts, env.users)
	env.reports = NewReportService(opts, env.users)
	env.dashboard = NewDashboardService(opts, env.users, env.checkins, env.checklists)
	return env
}

// seedUser inserts a user directly, skipping password hashing.
func (e *testEnv) seedUser(t *testing.T, name, role string) *Session {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@restaurante.com", Role: role, IsActive: true}
	require.NoError(t, e.opts.DB.Create(u).Error)
	return &Session{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (e *testEnv) seedTemplate(t *testing.T, manager *Session, title string, requiresPhoto bool) *models.ActivityTemplate {
	t.Helper()
	a := &models.ActivityTemplate{
		Title:         title,
		Description:   "Descrição da atividade " + title,
		Category:      constants.CategoryCozinha,
		Frequency:     constants.FrequencyDaily,
		RequiresPhoto: requiresPhoto,
		CreatedBy:     manager.UserID,
	}
	require.NoError(t, e.opts.DB.Create(a).Error)
	return a
}

func (e *testEnv) seedProcess(t *testing.T, manager *Session, name string, templates ...*models.ActivityTemplate) *models.Process {
	t.Helper()
	ids := make([]string, len(templates))
	for i, tpl := range templates {
		ids[i] = tpl.ID
	}
	p := &models.Process{Name: name, Description: "Processo " + name, ActivityIDs: ids, IsActive: true, CreatedBy: manager.UserID}
	require.NoError(t, e.opts.DB.Create(p).Error)
	return p
}
