package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tattoo-studio-api/internal/metrics"
	"tattoo-studio-api/pkg/lambda"
)

// RequestIDKey is the key used to store request ID in context
const RequestIDKey = "request_id"

// HeaderRequestID carries the request id on responses
const HeaderRequestID = "X-Request-ID"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)
		c.Next()
	}
}

// StructuredLogger logs every dev server request with its outcome
func StructuredLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"request_id":  c.GetString(RequestIDKey),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
			"client_ip":   c.ClientIP(),
		}
		if raw := c.Request.URL.RawQuery; raw != "" {
			fields["query"] = raw
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.WithFields(fields).Error("Server error")
		case c.Writer.Status() >= 400:
			logger.WithFields(fields).Warn("Client error")
		default:
			logger.WithFields(fields).Debug("Request completed")
		}
	}
}

// Instrument wraps a function handler with request ids, invocation logging,
// metrics and panic recovery. Errors returned by next become 500 responses.
func Instrument(function string, logger *logrus.Logger, next lambda.HandlerFunc) lambda.HandlerFunc {
	if logger == nil {
		logger = logrus.New()
	}

	return func(ctx context.Context, req *lambda.Request) (resp *lambda.Response, err error) {
		start := time.Now()
		if req.RequestID == "" {
			req.RequestID = uuid.New().String()
		}

		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"request_id": req.RequestID,
					"function":   function,
					"panic":      r,
				}).Error("Handler panicked")
				resp, err = internalErrorResponse(fmt.Errorf("%v", r))
			}
			if err != nil {
				resp, err = internalErrorResponse(err)
			}
			if resp == nil {
				resp, err = internalErrorResponse(fmt.Errorf("empty response"))
			}

			latency := time.Since(start)
			status := resp.StatusCode

			if resp.Headers == nil {
				resp.Headers = map[string]string{}
			}
			resp.Headers[HeaderRequestID] = req.RequestID

			metrics.InvocationsTotal.WithLabelValues(function, metricMethod(req.Method), strconv.Itoa(status)).Inc()
			metrics.InvocationDuration.WithLabelValues(function).Observe(latency.Seconds())

			fields := logrus.Fields{
				"request_id":  req.RequestID,
				"function":    function,
				"method":      req.Method,
				"status_code": status,
				"latency_ms":  float64(latency.Nanoseconds()) / 1000000,
			}
			if req.CallerID != 0 {
				fields["user_id"] = req.CallerID
			}

			switch {
			case status >= 500:
				logger.WithFields(fields).Error("Invocation failed")
			case status >= 400:
				logger.WithFields(fields).Warn("Invocation rejected")
			default:
				logger.WithFields(fields).Info("Invocation completed")
			}
		}()

		return next(ctx, req)
	}
}

func internalErrorResponse(cause error) (*lambda.Response, error) {
	return lambda.NewJSONResponse(500,
		map[string]string{"error": "Ошибка сервера: " + cause.Error()},
		map[string]string{"Access-Control-Allow-Origin": "*"},
	)
}

// metricMethod keeps the method label bounded. Anything outside the methods
// the functions serve is counted as OTHER.
func metricMethod(method string) string {
	method = strings.ToUpper(method)
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions:
		return method
	}
	return "OTHER"
}
