package httpapi

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/Hawkeyeeye/smart-farmer/internal/access"
	"github.com/Hawkeyeeye/smart-farmer/internal/dashboard"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service, session *access.Session, hub *dashboard.Hub) {
	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		plan, err := planFromQuery(c, session)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		payload, ok := service.Latest()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no dashboard data yet")
		}

		return c.JSON(dashboard.Redact(payload, plan))
	})

	v1.Post("/plan", func(c *fiber.Ctx) error {
		var req planRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plan, err := session.Subscribe(req.Plan)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"plan":     plan,
			"features": access.Features(plan),
		})
	})

	v1.Get("/features", func(c *fiber.Ctx) error {
		plan, err := planFromQuery(c, session)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(fiber.Map{
			"plan":     plan,
			"features": access.Features(plan),
		})
	})

	v1.Get("/stream", func(c *fiber.Ctx) error {
		plan, err := planFromQuery(c, session)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		id, ch := hub.Subscribe(plan)

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")

		c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
			defer hub.Unsubscribe(id)

			// Send the latest payload immediately so a new client is
			// not blank until the next cycle.
			if payload, ok := service.Latest(); ok {
				if !writeEvent(w, mustMarshal(dashboard.Redact(payload, plan))) {
					return
				}
			}

			for msg := range ch {
				if !writeEvent(w, msg) {
					return
				}
			}
		}))

		return nil
	})
}

func writeEvent(w *bufio.Writer, data []byte) bool {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return false
	}
	return w.Flush() == nil
}

func mustMarshal(p dashboard.Payload) []byte {
	b, err := json.Marshal(p)
	if err != nil {
		return []byte("{}")
	}
	return b
}

// planRequest is the plan-change body.
type planRequest struct {
	Plan string `json:"plan" validate:"required,oneof=free pro premium"`
}

// planFromQuery resolves the effective plan: an explicit ?plan= wins,
// otherwise the session's current plan applies. Unknown plan values are
// rejected rather than silently downgraded.
func planFromQuery(c *fiber.Ctx, session *access.Session) (access.Plan, error) {
	q := c.Query("plan")
	if q == "" {
		return session.Current(), nil
	}
	return access.ParsePlan(q)
}
