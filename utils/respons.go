package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondStoreError logs the underlying persistence failure and answers
// with a generic 500. Driver details never reach the caller.
func RespondStoreError(c *gin.Context, err error) {
	if ErrorLogger != nil {
		ErrorLogger.Printf("store error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
}
