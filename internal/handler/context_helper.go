package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/grade-genius-api/pkg/middleware/requestid"
)

func requestLogger(c *gin.Context, logger *zap.Logger) *zap.Logger {
	if id := requestid.Value(c); id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
