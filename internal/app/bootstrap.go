package app

import (
	"fmt"
	"log"
	"strings"

	"gigboard/internal/config"
	"gigboard/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, mounts the HTTP surface, and starts the
// background pieces (websocket hub, notification worker). The returned
// cleanup stops them and closes the container.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware().Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	c.Registry.Register(f)

	go c.Hub.Run()
	if err := c.Worker.Start(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("start notify worker: %w", err)
	}

	cleanup := func() error {
		c.Worker.Shutdown()
		return c.Close()
	}
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
