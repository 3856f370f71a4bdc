package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Logging логирует каждый HTTP запрос одной структурированной записью:
// метод, маршрут, статус ответа, время выполнения и request id
func Logging(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Фиксируем ответ, чтобы знать итоговый статус
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(log.Fields{
				"method":      req.Method,
				"route":       c.Path(),
				"uri":         req.RequestURI,
				"status":      res.Status,
				"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
				"remote_ip":   c.RealIP(),
				"request_id":  res.Header().Get(echo.HeaderXRequestID),
				"bytes_out":   res.Size,
			})
			if err != nil {
				entry = entry.WithError(err)
			}

			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case res.Status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request completed")
			}

			return err
		}
	}
}
