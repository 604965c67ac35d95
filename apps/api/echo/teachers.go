package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type teacherApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	tg := g.Group("/teachers")
	tg.GET("", api.query)
	tg.POST("", api.create)

	// detail endpoints
	dg := tg.Group("/:id", objectMiddleware(svc.GetTeacherByID))
	dg.GET("", api.retrieve)
	dg.GET("/courses", api.courses)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *teacherApi) query(ctx echo.Context) error {
	filter := new(school.TeacherFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Teacher{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	teachers, err := api.svc.QueryTeachers(*filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data school.TeacherFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TeacherFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.AddTeacher(data)
	if err != nil {
		return errors.Wrap(err, "adding teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	t, err := contextObject[school.Teacher](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

// courses lists the courses assigned to the teacher.
func (api *teacherApi) courses(ctx echo.Context) error {
	t, err := contextObject[school.Teacher](ctx)
	if err != nil {
		return err
	}
	courses, err := api.svc.QueryCourses(school.CourseFilter{TeacherID: t.ID})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *teacherApi) update(ctx echo.Context) error {
	t, err := contextObject[school.Teacher](ctx)
	if err != nil {
		return err
	}

	var data school.Teacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Teacher")
	}
	if err := data.TeacherFields.Validate(api.validate); err != nil {
		return err
	}
	data.ID = t.ID

	if t, err = api.svc.UpdateTeacher(data); err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

// destroy keeps the teacher's courses, unassigned.
func (api *teacherApi) destroy(ctx echo.Context) error {
	t, err := contextObject[school.Teacher](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteTeacher(t.ID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
