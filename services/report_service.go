package services

import (
	"bytes"
	"context"
	"math"
	"sort"

	"restaurante360/constants"
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/models"

	"github.com/xuri/excelize/v2"
)

// BuildReport aggregates checklists into per-assignee compliance and status
// counts. Percentages are rounded half away from zero; the average is the
// unweighted mean of the unrounded per-user percentages, rounded once.
func BuildReport(checklists []models.Checklist, users map[string]models.User) dto.Report {
	type tally struct{ total, done int }
	perUser := make(map[string]*tally)
	var order []string

	checklistStatus := map[string]int{
		string(models.ChecklistOpen):       0,
		string(models.ChecklistInProgress): 0,
		string(models.ChecklistCompleted):  0,
	}
	taskStatus := map[string]int{
		string(models.TaskDone):          0,
		string(models.TaskPending):       0,
		string(models.TaskNotApplicable): 0,
	}

	report := dto.Report{}
	for _, c := range checklists {
		checklistStatus[string(c.Status)]++
		t, ok := perUser[c.AssignedTo]
		if !ok {
			t = &tally{}
			perUser[c.AssignedTo] = t
			order = append(order, c.AssignedTo)
		}
		for _, task := range c.Tasks {
			report.TotalTasks++
			taskStatus[string(task.Status)]++
			t.total++
			if task.Status == models.TaskDone {
				t.done++
			}
		}
	}

	var sum float64
	report.Compliance = make([]dto.UserCompliance, 0, len(order))
	raw := make(map[string]float64, len(order))
	for _, userID := range order {
		t := perUser[userID]
		pct := 0.0
		if t.total > 0 {
			pct = float64(t.done) / float64(t.total) * 100
		}
		raw[userID] = pct
		sum += pct

		name := constants.UnknownUserName
		if u, ok := users[userID]; ok && u.Name != "" {
			name = u.Name
		}
		report.Compliance = append(report.Compliance, dto.UserCompliance{
			UserID:     userID,
			Name:       name,
			Total:      t.total,
			Completed:  t.done,
			Percentage: int(math.Round(pct)),
		})
	}
	if len(order) > 0 {
		report.AverageCompliance = int(math.Round(sum / float64(len(order))))
	}

	sort.SliceStable(report.Compliance, func(i, j int) bool {
		a, b := report.Compliance[i], report.Compliance[j]
		if raw[a.UserID] != raw[b.UserID] {
			return raw[a.UserID] > raw[b.UserID]
		}
		return a.Name < b.Name
	})

	report.ChecklistStatus = []dto.StatusCount{
		{Status: string(models.ChecklistOpen), Count: checklistStatus[string(models.ChecklistOpen)]},
		{Status: string(models.ChecklistInProgress), Count: checklistStatus[string(models.ChecklistInProgress)]},
		{Status: string(models.ChecklistCompleted), Count: checklistStatus[string(models.ChecklistCompleted)]},
	}
	report.TaskStatus = []dto.StatusCount{
		{Status: string(models.TaskDone), Count: taskStatus[string(models.TaskDone)]},
		{Status: string(models.TaskPending), Count: taskStatus[string(models.TaskPending)]},
		{Status: string(models.TaskNotApplicable), Count: taskStatus[string(models.TaskNotApplicable)]},
	}
	return report
}

type ReportService struct {
	opts  Options
	users *UserService
}

func NewReportService(opts Options, users *UserService) *ReportService {
	return &ReportService{opts: opts.withDefaults(), users: users}
}

// Summary builds the report over the caller's checklists in [from, to].
// Empty bounds are open.
func (s *ReportService) Summary(ctx context.Context, actor *Session, query dto.ReportQuery) (*dto.Report, error) {
	if query.From != "" && query.To != "" && query.From > query.To {
		return nil, apperrors.Validation("A data inicial deve ser anterior à data final")
	}

	q := s.opts.DB.WithContext(ctx).Where("created_by = ?", actor.UserID)
	if query.From != "" {
		q = q.Where("date >= ?", query.From)
	}
	if query.To != "" {
		q = q.Where("date <= ?", query.To)
	}
	var checklists []models.Checklist
	if err := q.Find(&checklists).Error; err != nil {
		return nil, apperrors.DB("Erro ao carregar checklists", err)
	}

	users, err := s.users.Directory(ctx)
	if err != nil {
		return nil, err
	}

	report := BuildReport(checklists, users)
	report.From = query.From
	report.To = query.To
	return &report, nil
}

// Export renders the summary as an XLSX workbook.
func (s *ReportService) Export(ctx context.Context, actor *Session, query dto.ReportQuery) (*bytes.Buffer, error) {
	report, err := s.Summary(ctx, actor, query)
	if err != nil {
		return nil, err
	}
	return RenderReportXLSX(report)
}

var reportStatusLabels = map[string]string{
	string(models.ChecklistOpen):       "Aberto",
	string(models.ChecklistInProgress): "Em andamento",
	string(models.ChecklistCompleted):  "Concluído",
	string(models.TaskDone):            "Concluída",
	string(models.TaskPending):         "Pendente",
	string(models.TaskNotApplicable):   "Não aplicável",
}

func RenderReportXLSX(report *dto.Report) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summary, compliance, status = "Resumo", "Conformidade", "Status"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	for _, name := range []string{compliance, status} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	period := report.From + " a " + report.To
	if report.From == "" && report.To == "" {
		period = "Todo o período"
	}
	rows := [][]interface{}{
		{"Indicador", "Valor"},
		{"Período", period},
		{"Total de tarefas", report.TotalTasks},
		{"Conformidade média (%)", report.AverageCompliance},
	}
	if err := writeRows(f, summary, rows); err != nil {
		return nil, err
	}

	rows = [][]interface{}{{"Colaborador", "Tarefas", "Concluídas", "Conformidade (%)"}}
	for _, c := range report.Compliance {
		rows = append(rows, []interface{}{c.Name, c.Total, c.Completed, c.Percentage})
	}
	if err := writeRows(f, compliance, rows); err != nil {
		return nil, err
	}

	rows = [][]interface{}{{"Tipo", "Status", "Quantidade"}}
	for _, sc := range report.ChecklistStatus {
		rows = append(rows, []interface{}{"Checklist", reportStatusLabels[sc.Status], sc.Count})
	}
	for _, sc := range report.TaskStatus {
		rows = append(rows, []interface{}{"Tarefa", reportStatusLabels[sc.Status], sc.Count})
	}
	if err := writeRows(f, status, rows); err != nil {
		return nil, err
	}

	for _, sheet := range []string{summary, compliance, status} {
		if err := f.SetCellStyle(sheet, "A1", "D1", header); err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, "A", "A", 28); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
