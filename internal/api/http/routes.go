package httpapi

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/brianoflondon/clock-dashboard/internal/store"
	"github.com/brianoflondon/clock-dashboard/internal/weather"
)

const (
	appName             = "clock-dashboard"
	defaultHistoryLimit = 10
)

var validate = validator.New()

// NewApp builds the status server. Access logs go to logOutput; the
// terminal belongs to the dashboard, so callers usually pass the log sink.
func NewApp(snapshots weather.Store, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	if logOutput == nil {
		logOutput = io.Discard
	}
	app.Use(logger.New(logger.Config{Output: logOutput}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	RegisterRoutes(app, snapshots)
	return app
}

// RegisterRoutes wires the read-only weather status handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, snapshots weather.Store) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snapshot, err := snapshots.GetLatest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather fetch has completed yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather status")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		history, err := snapshots.GetHistory(req.Limit)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather history")
		}

		return c.JSON(fiber.Map{
			"limit":     req.Limit,
			"snapshots": history,
		})
	})
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Limit int `validate:"min=1,max=100"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Limit = defaultHistoryLimit

	raw := c.Query("limit")
	if raw == "" {
		return nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("limit must be an integer")
	}
	h.Limit = limit
	return nil
}
