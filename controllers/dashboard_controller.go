package controllers

import (
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard *services.DashboardService
}

func NewDashboardController(dashboard *services.DashboardService) DashboardController {
	return DashboardController{dashboard: dashboard}
}

func (d DashboardController) GetManagerDashboard(c *gin.Context) {
	dash, err := d.dashboard.Manager(c.Request.Context(), session(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dash)
}

func (d DashboardController) GetCollaboratorDashboard(c *gin.Context) {
	dash, err := d.dashboard.Collaborator(c.Request.Context(), session(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dash)
}
