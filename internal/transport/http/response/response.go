package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeSamePassword       = 40001
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodePasswordMismatch   = 40102
	CodeNotOwner           = 40300
	CodeNotFound           = 40400
	CodeLoginNotFound      = 40401
	CodeLoginExists        = 40900
	CodeInternalServer     = 50000
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
