package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const ctxObjectKey = "object"

// objectMiddleware loads the object identified by the `:id` path param into the context.
// A missing object ends the request with the getter's not found error.
func objectMiddleware[T any](get func(id string) (T, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := get(ctx.Param("id"))
			if err != nil {
				return err
			}
			ctx.Set(ctxObjectKey, obj)
			return next(ctx)
		}
	}
}

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(ctxObjectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}
