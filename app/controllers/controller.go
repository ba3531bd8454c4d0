// Package controllers adapts HTTP requests to the services layer.
package controllers

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/boutique/app/repositories"
	"github.com/shashiranjanraj/boutique/app/services"
	"github.com/shashiranjanraj/boutique/pkg/ctx"
	"github.com/shashiranjanraj/boutique/pkg/logger"
)

// fail writes the envelope for err. notFound is the message used for
// ErrNotFound, e.g. "Order not found".
func fail(c *ctx.Context, err error, notFound string) {
	if notFound == "" {
		notFound = "Not found"
	}
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(notFound)
	case errors.Is(err, services.ErrConflict):
		c.Error(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized(err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, err.Error())
	}
}

// caller returns the authenticated user, answering 401 when there is none.
func caller(c *ctx.Context) (primitive.ObjectID, bool) {
	id, ok := c.UserID()
	if !ok {
		c.Unauthorized()
	}
	return id, ok
}

// target resolves the caller and the {id} path parameter. A malformed id is
// answered like a missing record.
func target(c *ctx.Context, notFound string) (user, id primitive.ObjectID, ok bool) {
	user, ok = caller(c)
	if !ok {
		return
	}
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err, notFound)
		return user, id, false
	}
	return user, id, true
}

// dateRange reads ?startDate&endDate, answering 400 on a bad date.
func dateRange(c *ctx.Context) (repositories.DateRange, bool) {
	rng, err := services.ParseDateRange(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		fail(c, err, "")
		return rng, false
	}
	return rng, true
}
