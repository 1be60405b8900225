package controllers

import (
	"fmt"
	"net/http"

	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) ReportController {
	return ReportController{reports: reports}
}

func (r ReportController) GetReport(c *gin.Context) {
	var query dto.ReportQuery
	if !bindQuery(c, &query) {
		return
	}
	report, err := r.reports.Summary(c.Request.Context(), session(c), query)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, report)
}

func (r ReportController) ExportReport(c *gin.Context) {
	var query dto.ReportQuery
	if !bindQuery(c, &query) {
		return
	}
	buf, err := r.reports.Export(c.Request.Context(), session(c), query)
	if err != nil {
		fail(c, err)
		return
	}
	name := "relatorio"
	if query.From != "" || query.To != "" {
		name = fmt.Sprintf("relatorio_%s_%s", query.From, query.To)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
