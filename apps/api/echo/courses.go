package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type courseApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:id", objectMiddleware(svc.GetCourseByID))
	dg.GET("", api.retrieve)
	dg.GET("/students", api.students)
	dg.GET("/attendance", api.attendance)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(school.CourseFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Course{})
	}
	courses, err := api.svc.QueryCourses(*filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data school.CourseFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CourseFields")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	c, err := api.svc.AddCourse(data)
	if err != nil {
		return errors.Wrap(err, "adding course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, err := contextObject[school.Course](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

// students lists the students enrolled in the course.
func (api *courseApi) students(ctx echo.Context) error {
	c, err := contextObject[school.Course](ctx)
	if err != nil {
		return err
	}
	students, err := api.svc.QueryStudents(school.StudentFilter{CourseID: c.ID}, nil)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

// attendance is the course's register for ?date= (today when omitted).
func (api *courseApi) attendance(ctx echo.Context) error {
	c, err := contextObject[school.Course](ctx)
	if err != nil {
		return err
	}
	entries, err := api.svc.DailyAttendance(c.ID, ctx.QueryParam("date"))
	if err != nil {
		return errors.Wrap(err, "listing daily attendance")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *courseApi) update(ctx echo.Context) error {
	c, err := contextObject[school.Course](ctx)
	if err != nil {
		return err
	}

	var data school.CourseFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CourseFields")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	if c, err = api.svc.UpdateCourse(school.Course{ID: c.ID, CourseFields: data}); err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	c, err := contextObject[school.Course](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteCourse(c.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
