package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type ActivityController struct {
	activities *services.ActivityService
}

func NewActivityController(activities *services.ActivityService) ActivityController {
	return ActivityController{activities: activities}
}

func (a ActivityController) GetActivities(c *gin.Context) {
	var filter dto.ActivityFilter
	if !bindQuery(c, &filter) {
		return
	}
	list, err := a.activities.List(c.Request.Context(), session(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

func (a ActivityController) CreateActivity(c *gin.Context) {
	var req dto.CreateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	activity, err := a.activities.Create(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, activity)
}

func (a ActivityController) GetActivityDetail(c *gin.Context) {
	activity, err := a.activities.Get(c.Request.Context(), session(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, activity)
}

func (a ActivityController) UpdateActivity(c *gin.Context) {
	var req dto.UpdateActivityRequest
	if !bindJSON(c, &req) {
		return
	}
	activity, err := a.activities.Update(c.Request.Context(), session(c), c.Param("id"), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, activity)
}

func (a ActivityController) ChangeActivityStatus(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	activity, err := a.activities.SetStatus(c.Request.Context(), session(c), c.Param("id"), req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, activity)
}
