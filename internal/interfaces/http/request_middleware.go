package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Nevera-api/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"
	localRequestID  = "request_id"
	localError      = "handler_error"
)

// RequestID asigna un UUID a cada petición (o respeta el X-Request-ID entrante).
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     headerRequestID,
		Generator:  uuid.NewString,
		ContextKey: localRequestID,
	})
}

// AccessLog registra una línea por petición. Los errores 5xx llevan el error interno.
func AccessLog(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		if herr, ok := c.Locals(localError).(error); ok {
			ev = ev.Err(herr)
		} else if err != nil {
			ev = ev.Err(err)
		}
		rid, _ := c.Locals(localRequestID).(string)
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("subject", GetSubject(c)).
			Msg("http")
		return err
	}
}
