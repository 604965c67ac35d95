package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core"
)

var orderingParam = "ordering"

// Ordering binds `?ordering=last_name,-grade`: a leading "-" sorts descending.
type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	val := ctx.QueryParam(orderingParam)
	if val == "" {
		return
	}

	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// queryFilter is implemented by every filter bound from a query string.
type queryFilter interface {
	Clean()
}

// bindFilter reports whether the query string could be bound to filter.
func bindFilter(ctx echo.Context, filter queryFilter) bool {
	if err := (&echo.DefaultBinder{}).BindQueryParams(ctx, filter); err != nil {
		return false
	}
	filter.Clean()
	return true
}
