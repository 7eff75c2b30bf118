package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/mantle/internal"
)

// Logging returns middleware that logs one line per request: method,
// path, matched action (when resolution succeeded), status and duration.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			attrs := []any{
				slog.String("method", c.Method()),
				slog.String("path", c.Path()),
				slog.Int("status", c.ResponseWriter().Status()),
				slog.Duration("duration", time.Since(start)),
			}
			if action := c.Action(); action != nil {
				attrs = append(attrs, slog.String("action", action.ReversePath()))
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				c.LogError("request failed", attrs...)
				return err
			}

			c.LogInfo("request completed", attrs...)
			return nil
		}
	}
}
