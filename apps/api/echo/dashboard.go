package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

func registerDashboardAPI(g *echo.Group, svc *school.Service) {
	g.GET("/dashboard", func(ctx echo.Context) error {
		stats, err := svc.Stats(ctx.QueryParam("date"))
		if err != nil {
			return errors.Wrap(err, "computing stats")
		}
		return ctx.JSON(http.StatusOK, stats)
	})
}
