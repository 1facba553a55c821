package middleware

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// UserIDHeader identifies the requesting user. The gateway in front of
	// this service is trusted to have authenticated it.
	UserIDHeader = "X-User-Id"

	requestIDHeader = "X-Request-Id"
	userIDKey       = "userID"
	requestIDKey    = "requestID"
)

// RequestIDMiddleware assigns each request a request id, reusing one supplied
// by the caller.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware logs one line per request through zap.
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// RecoveryMiddleware converts panics into 500 responses and logs them.
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   gin.H{"code": "internal", "message": "internal server error"},
				})
			}
		}()
		c.Next()
	}
}

// CORSMiddleware applies a permissive CORS policy.
func CORSMiddleware() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = append(cfg.AllowHeaders, UserIDHeader, requestIDHeader)
	return cors.New(cfg)
}

// SecurityHeadersMiddleware sets standard security response headers.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

// RequireUserID aborts with 401 unless the request carries a parseable
// X-User-Id header, and stores the id for handlers.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "unauthorized", "message": "missing " + UserIDHeader + " header"},
			})
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "unauthorized", "message": "invalid " + UserIDHeader + " header"},
			})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// GetUserID returns the authenticated user id stored by RequireUserID.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	return userID, ok
}
