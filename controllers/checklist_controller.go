package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type ChecklistController struct {
	checklists *services.ChecklistService
}

func NewChecklistController(checklists *services.ChecklistService) ChecklistController {
	return ChecklistController{checklists: checklists}
}

func (ctl ChecklistController) GetChecklists(c *gin.Context) {
	var filter dto.ChecklistFilter
	if !bindQuery(c, &filter) {
		return
	}
	list, total, err := ctl.checklists.List(c.Request.Context(), session(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	page := filter.Page.Normalize()
	response.SuccessWithPagination(c, dto.NewChecklistResponses(list), page.Page, page.Limit, total)
}

func (ctl ChecklistController) AssignChecklist(c *gin.Context) {
	var req dto.AssignChecklistRequest
	if !bindJSON(c, &req) {
		return
	}
	checklist, err := ctl.checklists.Assign(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.NewChecklistResponse(*checklist))
}

func (ctl ChecklistController) CreateOneOffTask(c *gin.Context) {
	var req dto.OneOffTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	checklist, err := ctl.checklists.CreateOneOff(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.NewChecklistResponse(*checklist))
}

func (ctl ChecklistController) GetChecklistDetail(c *gin.Context) {
	checklist, err := ctl.checklists.Get(c.Request.Context(), session(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewChecklistResponse(*checklist))
}

func (ctl ChecklistController) CompleteTask(c *gin.Context) {
	var req dto.CompleteTaskRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	res, err := ctl.checklists.CompleteTask(c.Request.Context(), session(c), c.Param("id"), c.Param("taskId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

func (ctl ChecklistController) MarkTaskNotApplicable(c *gin.Context) {
	var req dto.NotApplicableRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	res, err := ctl.checklists.MarkTaskNotApplicable(c.Request.Context(), session(c), c.Param("id"), c.Param("taskId"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

// GetMyTasks lists the caller's tasks; ?date= narrows to one day.
func (ctl ChecklistController) GetMyTasks(c *gin.Context) {
	var query dto.MyTasksQuery
	if !bindQuery(c, &query) {
		return
	}
	tasks, err := ctl.checklists.MyTasks(c.Request.Context(), session(c), query.Date)
	if err != nil {
		fail(c, err)
		return
	}
	if tasks == nil {
		tasks = []dto.MyTask{}
	}
	response.Success(c, tasks)
}
