package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assistant"
)

type (
	assistantRequest struct {
		Prompt string `json:"prompt" validate:"required"`
	}

	assistantResponse struct {
		Text string `json:"text"`
	}
)

func registerAssistantAPI(g *echo.Group, svc *assistant.Service, validate *validator.Validate) {
	g.POST("/assistant", func(ctx echo.Context) error {
		var data assistantRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to assistantRequest")
		}
		data.Prompt = core.CleanString(data.Prompt)
		if err := validate.Struct(data); err != nil {
			return err
		}

		// failures are reported in the text, the request itself succeeds
		text := svc.Ask(ctx.Request().Context(), data.Prompt)
		return ctx.JSON(http.StatusOK, assistantResponse{Text: text})
	})
}
