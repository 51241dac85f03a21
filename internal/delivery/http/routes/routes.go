package routes

import (
	"gigboard/internal/delivery/http/handler"
	"gigboard/internal/delivery/http/middleware"
	"gigboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Auth          *handler.AuthHandler
	Jobs          *handler.JobsHandler
	Chats         *handler.ChatHandler
	Notifications *handler.NotificationHandler
	Health        *handler.HealthHandler

	AuthMW *middleware.AuthMiddleware
	Stream *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.Auth.RegisterRoutes(v1.Group("/auth"))

	protected := v1.Group("", r.AuthMW.Middleware())
	r.Jobs.RegisterRoutes(protected.Group("/jobs"))
	protected.Get("/testimonials/highlights", r.Jobs.Highlights)
	r.Chats.RegisterRoutes(protected.Group("/chats"))
	r.Notifications.RegisterRoutes(protected.Group("/notifications"))

	if r.Stream != nil {
		app.Get("/ws", r.AuthMW.Middleware(), r.Stream.HandleStream(middleware.CtxUserIDKey))
	}
}
