package controllers

import (
	"restaurante360/middleware"
	"restaurante360/services"
	"restaurante360/services/logger"
	"restaurante360/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSController upgrades authenticated clients to the live update stream.
type WSController struct {
	auth   *services.AuthService
	m      *melody.Melody
	logger logger.Logger
}

func NewWSController(auth *services.AuthService, m *melody.Melody, log logger.Logger) WSController {
	if log == nil {
		log = logger.Nop{}
	}
	return WSController{auth: auth, m: m, logger: log}
}

// Connect authenticates before the upgrade so every session carries the
// keys the hub filters on.
func (w WSController) Connect(c *gin.Context) {
	actor, err := w.auth.Authenticate(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		fail(c, err)
		return
	}
	keys := map[string]interface{}{
		notification.KeyUserID: actor.UserID,
		notification.KeyRole:   actor.Role,
	}
	if err := w.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		w.logger.Error("websocket upgrade for %s: %v", actor.UserID, err)
	}
}
