package controllers

import (
	"github.com/gin-gonic/gin"

	"go-agrilab/store"
	"go-agrilab/utils"
)

// Health 检查数据库连接
func Health(s *store.Store) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := s.Ping(ctx.Request.Context()); err != nil {
			utils.Fail(ctx, utils.Storage("数据库不可用", err))
			return
		}
		utils.Success(ctx, gin.H{"status": "ok"})
	}
}
