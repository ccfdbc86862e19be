package gin

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
)

const (
	requestIDHeader   = "X-Request-ID"
	requestIDKey      = "request_id"
	requestIDBytes    = 16
	maxRequestIDBytes = 128
)

// RequestIDLoggerMiddleware assigns every request an id (the inbound
// X-Request-ID when it is short enough, otherwise a random one), echoes it
// in the response and stores a logger carrying it in the request context.
func RequestIDLoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDBytes {
			requestID = generateRequestID()
		}

		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		reqLog := log.With(logger.String(requestIDKey, requestID))
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))

		c.Next()
	}
}

func generateRequestID() string {
	buf := make([]byte, requestIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 16)
	}
	return hex.EncodeToString(buf)
}

// LoggerMiddleware writes one access log entry per request through the
// request-scoped logger, so entries carry the request id.
func LoggerMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("duration", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
		}
		if query != "" {
			fields = append(fields, logger.String("query", query))
		}

		reqLog := logger.FromContext(c.Request.Context(), log)
		switch {
		case len(c.Errors) > 0:
			reqLog.Error("HTTP request with errors", append(fields, logger.Strings("errors", c.Errors.Errors()))...)
		case path == "/health" || path == "/metrics":
			// probes and scrapes arrive every few seconds
			reqLog.Debug("HTTP request", fields...)
		default:
			reqLog.Info("HTTP request", fields...)
		}
	}
}

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Origin, Content-Type, Accept, Authorization, X-Request-ID"
	corsMaxAge       = "43200"
)

// CORSMiddleware lets the listed browser origins call the API and answers
// their preflights. With no origins it does nothing.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed := allowedOrigin(c.Request.Header.Get("Origin"), origins)
		if allowed == "" {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowed)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Max-Age", corsMaxAge)
		if allowed != "*" {
			h.Add("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when the request is not cross-origin or not allowed.
func allowedOrigin(origin string, origins []string) string {
	if origin == "" {
		return ""
	}
	for _, o := range origins {
		switch o {
		case "*":
			return "*"
		case origin:
			return origin
		}
	}
	return ""
}

// RecoveryMiddleware turns panics into logged 500 responses.
func RecoveryMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered",
					logger.Any("error", err),
					logger.String("path", c.Request.URL.Path),
					logger.String("method", c.Request.Method),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
					"code":  "INTERNAL_ERROR",
				})
			}
		}()

		c.Next()
	}
}
