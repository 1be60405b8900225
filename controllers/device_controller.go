package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type DeviceController struct {
	devices *services.DeviceService
}

func NewDeviceController(devices *services.DeviceService) DeviceController {
	return DeviceController{devices: devices}
}

func (d DeviceController) RegisterDevice(c *gin.Context) {
	var req dto.DeviceTokenRequest
	if !bindJSON(c, &req) {
		return
	}
	device, err := d.devices.Register(c.Request.Context(), session(c), req.Token)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, device)
}
