package routes

import (
	"net/http"

	"restaurante360/controllers"
	"restaurante360/middleware"
	"restaurante360/services"
	"restaurante360/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

func SetupRoutes(router *gin.Engine, svc *services.Services, m *melody.Melody, log logger.Logger) {
	authController := controllers.NewAuthController(svc.Auth, svc.Users)
	userController := controllers.NewUserController(svc.Users)
	activityController := controllers.NewActivityController(svc.Activities)
	processController := controllers.NewProcessController(svc.Processes)
	checklistController := controllers.NewChecklistController(svc.Checklists)
	photoController := controllers.NewPhotoController(svc.Photos)
	checkInController := controllers.NewCheckInController(svc.CheckIns)
	reportController := controllers.NewReportController(svc.Reports)
	dashboardController := controllers.NewDashboardController(svc.Dashboard)
	deviceController := controllers.NewDeviceController(svc.Devices)
	wsController := controllers.NewWSController(svc.Auth, m, log)

	router.Use(middleware.ErrorHandler())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/ws", wsController.Connect)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/signup", authController.SignUp)
	v1.POST("/auth/login", authController.Login)

	authed := v1.Group("", middleware.AuthMiddleware(svc.Auth))
	manager := authed.Group("", middleware.RequireManager())

	authed.GET("/auth/me", authController.Me)

	manager.GET("/users", userController.GetUsers)
	manager.POST("/users", userController.CreateUser)
	authed.GET("/users/:id", userController.GetUserByID)
	authed.PUT("/users/:id", userController.UpdateUser)
	manager.PUT("/users/:id/status", userController.ChangeUserStatus)

	manager.GET("/activities", activityController.GetActivities)
	manager.POST("/activities", activityController.CreateActivity)
	manager.GET("/activities/:id", activityController.GetActivityDetail)
	manager.PUT("/activities/:id", activityController.UpdateActivity)
	manager.PUT("/activities/:id/status", activityController.ChangeActivityStatus)

	manager.GET("/processes", processController.GetProcesses)
	manager.POST("/processes", processController.CreateProcess)
	manager.GET("/processes/:id", processController.GetProcessDetail)
	manager.PUT("/processes/:id", processController.UpdateProcess)
	manager.PUT("/processes/:id/status", processController.ChangeProcessStatus)
	manager.POST("/routines", processController.CreateRoutine)

	authed.GET("/checklists", checklistController.GetChecklists)
	manager.POST("/checklists/assign", checklistController.AssignChecklist)
	manager.POST("/checklists/one-off", checklistController.CreateOneOffTask)
	authed.GET("/checklists/:id", checklistController.GetChecklistDetail)
	authed.POST("/checklists/:id/tasks/:taskId/complete", checklistController.CompleteTask)
	authed.POST("/checklists/:id/tasks/:taskId/not-applicable", checklistController.MarkTaskNotApplicable)
	authed.GET("/tasks/mine", checklistController.GetMyTasks)

	authed.POST("/photos", photoController.UploadPhotos)

	authed.POST("/checkins", checkInController.CheckIn)
	authed.GET("/checkins", checkInController.GetCheckIns)

	manager.GET("/reports/summary", reportController.GetReport)
	manager.GET("/reports/export", reportController.ExportReport)

	manager.GET("/dashboard/manager", dashboardController.GetManagerDashboard)
	authed.GET("/dashboard/collaborator", dashboardController.GetCollaboratorDashboard)

	authed.PUT("/devices/token", deviceController.RegisterDevice)
}
