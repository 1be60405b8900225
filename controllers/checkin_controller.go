package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type CheckInController struct {
	checkins *services.CheckInService
}

func NewCheckInController(checkins *services.CheckInService) CheckInController {
	return CheckInController{checkins: checkins}
}

// CheckIn accepts an empty body; the shift is then derived from the clock.
func (ctl CheckInController) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	checkIn, err := ctl.checkins.CheckIn(c.Request.Context(), session(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, checkIn)
}

func (ctl CheckInController) GetCheckIns(c *gin.Context) {
	var filter dto.CheckInFilter
	if !bindQuery(c, &filter) {
		return
	}
	list, err := ctl.checkins.List(c.Request.Context(), session(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}
