package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type examApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := examApi{svc: svc, validate: validate}

	eg := g.Group("/exams")
	eg.GET("", api.query)
	eg.POST("", api.create)

	// detail endpoints
	dg := eg.Group("/:id", objectMiddleware(svc.GetExamByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/results", api.results)
	dg.POST("/results", api.addResult)

	rg := g.Group("/exam-results")
	rg.GET("", api.queryResults)
	rg.DELETE("/:id", api.destroyResult)
}

func (api *examApi) query(ctx echo.Context) error {
	filter := new(school.ExamFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Exam{})
	}
	exams, err := api.svc.QueryExams(*filter)
	if err != nil {
		return errors.Wrap(err, "querying exams")
	}
	return ctx.JSON(http.StatusOK, exams)
}

func (api *examApi) create(ctx echo.Context) error {
	var data school.ExamFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExamFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.AddExam(data)
	if err != nil {
		return errors.Wrap(err, "adding exam")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *examApi) retrieve(ctx echo.Context) error {
	e, err := contextObject[school.Exam](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *examApi) update(ctx echo.Context) error {
	e, err := contextObject[school.Exam](ctx)
	if err != nil {
		return err
	}

	var data school.ExamFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExamFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if e, err = api.svc.UpdateExam(school.Exam{ID: e.ID, ExamFields: data}); err != nil {
		return errors.Wrap(err, "updating exam")
	}
	return ctx.JSON(http.StatusOK, e)
}

// destroy removes the exam along with its results.
func (api *examApi) destroy(ctx echo.Context) error {
	e, err := contextObject[school.Exam](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteExam(e.ID); err != nil {
		return errors.Wrap(err, "deleting exam")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *examApi) results(ctx echo.Context) error {
	e, err := contextObject[school.Exam](ctx)
	if err != nil {
		return err
	}
	details, err := api.svc.ExamResultDetails(school.ExamResultFilter{ExamID: e.ID})
	if err != nil {
		return errors.Wrap(err, "listing exam results")
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *examApi) addResult(ctx echo.Context) error {
	e, err := contextObject[school.Exam](ctx)
	if err != nil {
		return err
	}

	var data school.ExamResultFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ExamResultFields")
	}
	if err := data.Validate(api.validate, api.svc, e); err != nil {
		return err
	}

	r, err := api.svc.AddExamResult(e.ID, data)
	if err != nil {
		return errors.Wrap(err, "adding exam result")
	}
	return ctx.JSON(http.StatusCreated, r)
}

func (api *examApi) queryResults(ctx echo.Context) error {
	filter := new(school.ExamResultFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.ExamResultDetail{})
	}
	details, err := api.svc.ExamResultDetails(*filter)
	if err != nil {
		return errors.Wrap(err, "listing exam results")
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *examApi) destroyResult(ctx echo.Context) error {
	if err := api.svc.DeleteExamResult(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam result")
	}
	return ctx.NoContent(http.StatusNoContent)
}
