package middleware

import (
  "time"
  "github.com/gin-gonic/gin"
  "github.com/probata/estateledger-backend/internal/logger"
)

type RequestLogger struct {
  log *logger.Logger
}

func NewRequestLogger(log *logger.Logger) *RequestLogger {
  middlewareLogger := log.With("Middleware", "RequestLogger")
  return &RequestLogger{log: middlewareLogger}
}

func (rl *RequestLogger) Log() gin.HandlerFunc {
  return func(c *gin.Context) {
    start := time.Now()
    c.Next()
    rl.log.Info("request",
      "method", c.Request.Method,
      "path", c.FullPath(),
      "status", c.Writer.Status(),
      "duration", time.Since(start),
    )
  }
}
