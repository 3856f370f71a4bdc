package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
)

// CORS оборачивает rs/cors в echo middleware.
// allowedOrigins - список origin через запятую, maxAge в секундах (0 - сутки)
func CORS(allowedOrigins string, maxAge int) echo.MiddlewareFunc {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	if maxAge == 0 {
		maxAge = 86400
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderXRequestID,
		},
		ExposedHeaders: []string{echo.HeaderXRequestID},
		MaxAge:         maxAge,
	})

	return echo.WrapMiddleware(c.Handler)
}
