package controllers

import (
	"restaurante360/dto"
	apperrors "restaurante360/errors"
	"restaurante360/response"
	"restaurante360/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) UserController {
	return UserController{users: users}
}

func (u UserController) GetUsers(c *gin.Context) {
	var filter dto.UserFilter
	if !bindQuery(c, &filter) {
		return
	}
	users, err := u.users.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponses(users))
}

func (u UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := u.users.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.NewUserResponse(*user))
}

// GetUserByID is open to managers and to the user themself.
func (u UserController) GetUserByID(c *gin.Context) {
	actor := session(c)
	id := c.Param("id")
	if !actor.IsManager() && actor.UserID != id {
		fail(c, apperrors.Forbidden("Você só pode ver o próprio perfil"))
		return
	}
	user, err := u.users.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(*user))
}

// UpdateUser lets users edit their own profile; only managers change roles
// or edit other users.
func (u UserController) UpdateUser(c *gin.Context) {
	actor := session(c)
	id := c.Param("id")
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	if !actor.IsManager() && (actor.UserID != id || req.Role != "") {
		fail(c, apperrors.Forbidden("Sem permissão para alterar este usuário"))
		return
	}
	user, err := u.users.Update(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(*user))
}

func (u UserController) ChangeUserStatus(c *gin.Context) {
	var req dto.UserStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := u.users.SetActive(c.Request.Context(), session(c), c.Param("id"), *req.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.NewUserResponse(*user))
}
