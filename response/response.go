package response

import (
	"net/http"

	apperrors "restaurante360/errors"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every endpoint.
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	ErrorCode  string      `json:"errorCode,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Sucesso",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Criado com sucesso",
		Data: data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Sucesso",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a failure envelope with an explicit status.
func Error(c *gin.Context, status int, code apperrors.ErrorCode, message string) {
	c.JSON(status, Response{
		Code:      0,
		Mess:      message,
		ErrorCode: string(code),
	})
}

func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, apperrors.ErrCodeDBError, "Erro interno do servidor")
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "Não autenticado")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, apperrors.ErrCodeForbidden, "Acesso negado")
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, apperrors.ErrCodeNotFound, "Não encontrado")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeValidation, message)
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeValidation, apperrors.ErrCodeWeakPassword, apperrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeInvalidToken, apperrors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden, apperrors.ErrCodeUserInactive:
		return http.StatusForbidden
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeEmailInUse:
		return http.StatusConflict
	case apperrors.ErrCodePhotoRequired, apperrors.ErrCodeInvalidTransition,
		apperrors.ErrCodeTemplateNotFound, apperrors.ErrCodeProviderMismatch:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeStorageUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as an envelope. Errors that are not AppErrors, and DB
// errors, never leak their text to the client.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := StatusFor(appErr.Code)
	message := appErr.Message
	if status == http.StatusInternalServerError {
		message = "Erro interno do servidor"
	}
	Error(c, status, appErr.Code, message)
}
