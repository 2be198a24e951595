package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-agrilab/logger"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 返回创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Fail 根据错误类别写出错误响应
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Storage("Internal server error", err)
	}
	logger.FromContext(c.Request.Context()).
		WithField("kind", e.Kind.String()).
		Debugf("request failed: %v", e)
	c.JSON(e.Kind.Status(), ErrorResponse{Error: e.Message, Detail: e.Detail})
}

// AbortUnauthorized 返回未授权响应并终止后续处理
func AbortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: message})
}

// NotFoundResponse 返回资源未找到响应
func NotFoundResponse(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message})
}
