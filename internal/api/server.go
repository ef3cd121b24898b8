package api

import (
	"context"
	"errors"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/tool"
	"github.com/gofiber/fiber/v2"

	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront"
	"github.com/shopeasy/storefront/internal/storefront/model"
	"github.com/shopeasy/storefront/internal/storefront/tools"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

const clientIDLocal = "clientID"

// Response is the envelope of every JSON reply.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Result  any    `json:"result"`
}

// Server exposes the page controller contract over HTTP.
type Server struct {
	factory *storefront.Factory
	cfg     model.HTTPConfig
	tools   map[string]tool.InvokableTool

	callbacks einocb.Handler
}

func NewServer(factory *storefront.Factory, cfg model.HTTPConfig) (*Server, error) {
	s := &Server{factory: factory, cfg: cfg, tools: map[string]tool.InvokableTool{}, callbacks: tools.NewToolCallbacks()}
	for _, t := range tools.GetCatalogTools(factory.Catalogs(), factory.Index()) {
		info, err := t.Info(context.Background())
		if err != nil {
			return nil, err
		}
		s.tools[info.Name] = t
	}
	return s, nil
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "shopeasy-storefront",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	app.Use(requestLogger, s.clientID)
	s.routes(app)
	return app
}

func (s *Server) state(c *fiber.Ctx) *storefront.State {
	return s.factory.For(c.Locals(clientIDLocal).(string))
}

func (s *Server) clientID(c *fiber.Ctx) error {
	id := c.Get(s.cfg.ClientHeader)
	if id == "" {
		id = s.cfg.DefaultClient
	}
	c.Locals(clientIDLocal, id)
	return c.Next()
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = statusOf(err)
	}
	logx.Logger().Debug().
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("request handled")
	return err
}

// statusOf resolves the reply status of err, including Fiber's own errors.
func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return errx.StatusOf(err)
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(Response{Status: fe.Code, Message: fe.Message})
	}
	status := errx.StatusOf(err)
	if status >= fiber.StatusInternalServerError {
		logx.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: errx.MessageOf(err),
		Result:  fiber.Map{"kind": errx.KindOf(err)},
	})
}

func ok(c *fiber.Ctx, message string, result any) error {
	return c.Status(fiber.StatusOK).JSON(Response{Status: fiber.StatusOK, Message: message, Result: result})
}
