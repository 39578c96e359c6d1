package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
)

func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	if status >= 500 {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("request failed",
			zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"message": apperrors.UserMessage(err)})
}
