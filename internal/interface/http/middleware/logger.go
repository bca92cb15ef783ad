package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/backoffice/pkg/logger"
)

// HeaderRequestID 请求ID头，上游已经带了就沿用
const HeaderRequestID = "X-Request-ID"

// slowRequest 超过该耗时记warn
const slowRequest = 3 * time.Second

// Logger 请求日志中间件
// 生成请求ID写入响应头和request context，之后logger.Ctx(ctx)输出的日志都带request_id
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("client_ip", c.ClientIP()),
			zap.Duration("latency", latency),
		}
		if operator := GetUserID(c); operator != "" {
			fields = append(fields,
				zap.String("operator", operator),
				zap.String("operator_name", GetOperatorName(c)),
			)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		log := logger.Ctx(c.Request.Context())
		switch {
		case c.Writer.Status() >= 500:
			log.Error("请求完成", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("请求完成", fields...)
		case latency > slowRequest:
			log.Warn("慢请求", fields...)
		default:
			log.Info("请求完成", fields...)
		}
	}
}
