package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type attendanceApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	ag := g.Group("/attendance")
	ag.GET("", api.query)
	ag.PUT("", api.record)
}

func (api *attendanceApi) query(ctx echo.Context) error {
	filter := new(school.AttendanceFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.AttendanceRecord{})
	}
	records, err := api.svc.QueryAttendance(*filter)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return ctx.JSON(http.StatusOK, records)
}

// record sets a student's status for a day: 201 when new, 200 when an earlier status was replaced.
func (api *attendanceApi) record(ctx echo.Context) error {
	var data school.AttendanceRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceRecord")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	rec, created, err := api.svc.UpsertAttendance(data)
	if err != nil {
		return errors.Wrap(err, "recording attendance")
	}
	if created {
		return ctx.JSON(http.StatusCreated, rec)
	}
	return ctx.JSON(http.StatusOK, rec)
}
