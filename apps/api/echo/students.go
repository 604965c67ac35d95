package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type studentApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", objectMiddleware(svc.GetStudentByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(school.StudentFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Student{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	students, err := api.svc.QueryStudents(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data school.StudentFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StudentFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.AddStudent(data)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := contextObject[school.Student](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

// update replaces the whole student; an empty avatar_url falls back to the generated one.
func (api *studentApi) update(ctx echo.Context) error {
	s, err := contextObject[school.Student](ctx)
	if err != nil {
		return err
	}

	var data school.Student
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Student")
	}
	if err := data.StudentFields.Validate(api.validate); err != nil {
		return err
	}
	data.ID = s.ID

	if s, err = api.svc.UpdateStudent(data); err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := contextObject[school.Student](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteStudent(s.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
