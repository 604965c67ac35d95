package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type staffApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := staffApi{svc: svc, validate: validate}

	sg := g.Group("/staff")
	sg.GET("", api.query)
	sg.POST("", api.create)

	dg := sg.Group("/:id", objectMiddleware(svc.GetStaffByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *staffApi) query(ctx echo.Context) error {
	filter := new(school.StaffFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Staff{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	staff, err := api.svc.QueryStaff(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	return ctx.JSON(http.StatusOK, staff)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data school.StaffFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StaffFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.AddStaff(data)
	if err != nil {
		return errors.Wrap(err, "adding staff member")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	s, err := contextObject[school.Staff](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *staffApi) update(ctx echo.Context) error {
	s, err := contextObject[school.Staff](ctx)
	if err != nil {
		return err
	}

	var data school.Staff
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Staff")
	}
	if err := data.StaffFields.Validate(api.validate); err != nil {
		return err
	}
	data.ID = s.ID

	if s, err = api.svc.UpdateStaff(data); err != nil {
		return errors.Wrap(err, "updating staff member")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	s, err := contextObject[school.Staff](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteStaff(s.ID); err != nil {
		return errors.Wrap(err, "deleting staff member")
	}
	return ctx.NoContent(http.StatusNoContent)
}
