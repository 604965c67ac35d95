package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/school"
)

type announcementApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerAnnouncementAPI(g *echo.Group, svc *school.Service, validate *validator.Validate) {
	api := announcementApi{svc: svc, validate: validate}

	ag := g.Group("/announcements")
	ag.GET("", api.query)
	ag.POST("", api.create)

	dg := ag.Group("/:id", objectMiddleware(svc.GetAnnouncementByID))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// query lists announcements newest first.
func (api *announcementApi) query(ctx echo.Context) error {
	filter := new(school.AnnouncementFilter)
	if !bindFilter(ctx, filter) {
		return ctx.JSON(http.StatusOK, []school.Announcement{})
	}
	announcements, err := api.svc.QueryAnnouncements(*filter)
	if err != nil {
		return errors.Wrap(err, "querying announcements")
	}
	return ctx.JSON(http.StatusOK, announcements)
}

// create posts the announcement and emails its audience in the background.
func (api *announcementApi) create(ctx echo.Context) error {
	var data school.AnnouncementFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnnouncementFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.AddAnnouncement(data)
	if err != nil {
		return errors.Wrap(err, "adding announcement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *announcementApi) retrieve(ctx echo.Context) error {
	a, err := contextObject[school.Announcement](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, a)
}

// update edits the content only; the posting date is kept and nobody is notified.
func (api *announcementApi) update(ctx echo.Context) error {
	a, err := contextObject[school.Announcement](ctx)
	if err != nil {
		return err
	}

	var data school.AnnouncementFields
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AnnouncementFields")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	a.AnnouncementFields = data

	if a, err = api.svc.UpdateAnnouncement(a); err != nil {
		return errors.Wrap(err, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	a, err := contextObject[school.Announcement](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteAnnouncement(a.ID); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
