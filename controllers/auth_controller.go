package controllers

import (
	"restaurante360/dto"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthController(auth *services.AuthService, users *services.UserService) AuthController {
	return AuthController{auth: auth, users: users}
}

func (a AuthController) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := a.auth.SignUp(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.NewUserResponse(*user))
}

func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, res)
}

func (a AuthController) Me(c *gin.Context) {
	user, err := a.users.Get(c.Request.Context(), session(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(*user))
}
