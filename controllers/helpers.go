package controllers

import (
	"errors"
	"io"

	"restaurante360/middleware"
	"restaurante360/services"
	"restaurante360/validator"

	"github.com/gin-gonic/gin"
)

// fail records err on the context and stops the chain; ErrorHandler writes
// the envelope.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// bindJSON decodes and validates the body, failing the request on error.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		fail(c, validator.Default().AsAppError(err))
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for payloads whose fields are all optional:
// an empty body leaves obj untouched.
func bindOptionalJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		fail(c, validator.Default().AsAppError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		fail(c, validator.Default().AsAppError(err))
		return false
	}
	return true
}

func session(c *gin.Context) *services.Session {
	return middleware.CurrentSession(c)
}
