package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type ProcessController struct {
	processes *services.ProcessService
}

func NewProcessController(processes *services.ProcessService) ProcessController {
	return ProcessController{processes: processes}
}

// GetProcesses lists the caller's processes; ?active=true hides inactive
// ones.
func (p ProcessController) GetProcesses(c *gin.Context) {
	list, err := p.processes.List(c.Request.Context(), session(c), c.Query("active") == "true")
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

func (p ProcessController) CreateProcess(c *gin.Context) {
	var req dto.CreateProcessRequest
	if !bindJSON(c, &req) {
		return
	}
	process, err := p.processes.Create(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, process)
}

func (p ProcessController) CreateRoutine(c *gin.Context) {
	var req dto.CreateRoutineRequest
	if !bindJSON(c, &req) {
		return
	}
	routine, err := p.processes.CreateRoutine(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, routine)
}

func (p ProcessController) GetProcessDetail(c *gin.Context) {
	process, err := p.processes.Get(c.Request.Context(), session(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, process)
}

func (p ProcessController) UpdateProcess(c *gin.Context) {
	var req dto.UpdateProcessRequest
	if !bindJSON(c, &req) {
		return
	}
	process, err := p.processes.Update(c.Request.Context(), session(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, process)
}

func (p ProcessController) ChangeProcessStatus(c *gin.Context) {
	var req dto.ActiveRequest
	if !bindJSON(c, &req) {
		return
	}
	process, err := p.processes.SetActive(c.Request.Context(), session(c), c.Param("id"), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, process)
}
