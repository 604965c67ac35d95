package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type financeApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := financeApi{svc: svc, validate: validate}

	fg := g.Group("/finance")
	fg.GET("", api.query)
	fg.POST("", api.create)
	fg.GET("/summary", api.summary)
	fg.DELETE("/:id", api.destroy)
}

func (api *financeApi) query(ctx echo.Context) error {
	filter := new(school.FinanceFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.FinanceRecord{})
	}
	records, err := api.svc.QueryFinanceRecords(*filter)
	if err != nil {
		return errors.Wrap(err, "querying finance records")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *financeApi) create(ctx echo.Context) error {
	var data school.FinanceRecordFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FinanceRecordFields")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	f, err := api.svc.AddFinanceRecord(data)
	if err != nil {
		return errors.Wrap(err, "adding finance record")
	}
	return ctx.JSON(http.StatusCreated, f)
}

// summary totals the records matching the same filters as query.
func (api *financeApi) summary(ctx echo.Context) error {
	filter := new(school.FinanceFilter)
	if !bindFilter(ctx, filter) {
		filter = new(school.FinanceFilter)
	}
	summary, err := api.svc.FinanceSummary(*filter)
	if err != nil {
		return errors.Wrap(err, "summarizing finance records")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *financeApi) destroy(ctx echo.Context) error {
	if err := api.svc.DeleteFinanceRecord(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting finance record")
	}
	return ctx.NoContent(http.StatusNoContent)
}
