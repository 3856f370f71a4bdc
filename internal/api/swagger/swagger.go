package swagger

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

// spec описание HTTP API в формате OpenAPI 3
//
//go:embed openapi.json
var spec []byte

// Register добавляет маршрут GET /swagger.json с описанием API
func Register(e *echo.Echo) {
	e.GET("/swagger.json", serveSpec)
}

func serveSpec(c echo.Context) error {
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, spec)
}
