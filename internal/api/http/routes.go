package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-widget/internal/session"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
)

var validate = validator.New()

// sessionResponse is the body of every session endpoint.
type sessionResponse struct {
	ID   string    `json:"id"`
	View view.Page `json:"view"`
}

type searchRequest struct {
	City string `json:"city" validate:"required,max=100"`
}

type toggleRequest struct {
	Category string `json:"category" validate:"required,oneof=temperature wind precipitation"`
}

type dayRequest struct {
	Index *int `json:"index" validate:"required,gte=0,lte=15"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, registry *session.Registry) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		s := registry.Create()
		return c.Status(fiber.StatusCreated).JSON(sessionResponse{ID: s.ID, View: s.View.Page()})
	})

	v1.Get("/sessions/:id", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		return respond(c, s, nil)
	}))

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		err := registry.Delete(c.Params("id"))
		if errors.Is(err, session.ErrInvalidID) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to delete session")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/sessions/:id/search", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		var req searchRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return respond(c, s, s.Service.Search(c.UserContext(), req.City))
	}))

	v1.Post("/sessions/:id/retry", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		return respond(c, s, s.Service.Retry(c.UserContext()))
	}))

	v1.Post("/sessions/:id/units/toggle", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		var req toggleRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return respond(c, s, s.Service.ToggleUnit(c.UserContext(), weather.Category(req.Category)))
	}))

	v1.Post("/sessions/:id/units/switch", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		return respond(c, s, s.Service.SwitchUnits(c.UserContext()))
	}))

	v1.Post("/sessions/:id/day", withSession(registry, func(c *fiber.Ctx, s *session.Session) error {
		var req dayRequest
		if err := bind(c, &req); err != nil {
			return err
		}
		return respond(c, s, s.Service.SelectDay(*req.Index))
	}))
}

func withSession(registry *session.Registry, h func(*fiber.Ctx, *session.Session) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := registry.GetOrRestore(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return h(c, s)
	}
}

func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// respond writes the session page. Fetch outcomes that the page already
// shows (no results, error panel, superseded request) still carry the page,
// with a status describing the outcome.
func respond(c *fiber.Ctx, s *session.Session, err error) error {
	status := fiber.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, weather.ErrEmptyQuery),
		errors.Is(err, weather.ErrDayOutOfRange),
		errors.Is(err, weather.ErrUnknownCategory):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNoForecast):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, weather.ErrStale):
		status = fiber.StatusConflict
	case errors.Is(err, weather.ErrCityNotFound):
		status = fiber.StatusNotFound
	default:
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(sessionResponse{ID: s.ID, View: s.View.Page()})
}
