package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/emellab/campus/core/content"
)

// createdFunc shapes the response body of a successful create.
type createdFunc[T content.Entity[T]] func(id string, rec T) interface{}

type contentApi[T content.Entity[T]] struct {
	svc     *content.Service[T]
	created createdFunc[T]
}

func registerContentAPI[T content.Entity[T]](g *echo.Group, svc *content.Service[T], created createdFunc[T]) {
	if created == nil {
		created = func(id string, _ T) interface{} { return echo.Map{"id": id} }
	}
	api := contentApi[T]{
		svc:     svc,
		created: created,
	}

	g.POST("", api.create)
	g.GET("", api.query)
}

func admissionCreated(id string, rec content.Admission) interface{} {
	return echo.Map{"id": id, "status": rec.Status}
}

// Handlers

func (api *contentApi[T]) create(ctx echo.Context) error {
	var data T
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrapf(err, "binding %s", api.svc.Collection())
	}

	id, rec, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.created(id, rec))
}

func (api *contentApi[T]) query(ctx echo.Context) error {
	q, err := content.NewListQuery[T](ctx.QueryParams())
	if err != nil {
		return err
	}

	recs, err := api.svc.List(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = make([]T, 0)
	}
	return ctx.JSON(http.StatusOK, recs)
}
