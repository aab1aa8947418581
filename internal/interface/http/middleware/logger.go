package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Logger 请求日志中间件
// 设计说明:
// 1. 为每个请求生成唯一的请求ID,写入Context与响应头,便于排查问题
// 2. 记录方法、路径、状态码、耗时与客户端IP
// 3. 超过慢请求阈值时额外输出WARN
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 生成请求ID
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		// 2. 记录开始时间
		startTime := time.Now()

		// 3. 处理请求
		c.Next()

		// 4. 记录请求信息
		latency := time.Since(startTime)

		var errMsg string
		if len(c.Errors) > 0 {
			errMsg = c.Errors.String()
		}

		fmt.Printf("[GIN] %s | %3d | %13v | %15s | %-7s %s %s\n",
			time.Now().Format("2006/01/02 - 15:04:05"),
			c.Writer.Status(),
			latency,
			c.ClientIP(),
			c.Request.Method,
			c.Request.URL.Path,
			errMsg,
		)

		// 慢请求告警
		if latency > 3*time.Second {
			fmt.Printf("[WARN] Slow request: %s %s took %v (request_id=%s)\n",
				c.Request.Method,
				c.Request.URL.Path,
				latency,
				requestID,
			)
		}
	}
}
