package server

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	handlers "github.com/VettaLabs/ThesisGate/pkg/handlers/http"
	"github.com/VettaLabs/ThesisGate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	GateServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	GateServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewGateServer(di GateServerDI) *GateServer {
	return &GateServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *GateServer) Run() error {
	s.setupRoutes()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("Starting thesis gate server")
	return s.Router.Listen(addr)
}

func (s *GateServer) setupRoutes() {
	s.Router.Use(s.middlewareTransport.PanicRecoverMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.RequestIDMiddleware.Middleware())
	s.Router.Use(s.middlewareTransport.MetricsMiddleware.Middleware())

	s.Router.Get("/", s.handlerTransport.VersionHandler.Handle)
	s.Router.Get("/health", s.handlerTransport.HealthHandler.Handle)

	s.addRoutes(s.Router.Group(""))
}

func (s *GateServer) addRoutes(router fiber.Router) {
	v1 := router.Group("/api/v1")
	{
		v1.Get("/version", s.handlerTransport.VersionHandler.Handle)
		v1.Post("/moderation", s.handlerTransport.ModerationHandler.Handle)
		v1.Post("/analysis", s.handlerTransport.AnalysisHandler.Handle)
		v1.Post("/warmup", s.handlerTransport.WarmupHandler.Handle)

		reviews := v1.Group("/reviews")
		{
			reviews.Post("", s.handlerTransport.CreateReviewHandler.Handle)
			reviews.Get("",
				s.middlewareTransport.AdminAuthMiddleware.Middleware(),
				s.handlerTransport.ListReviewsHandler.Handle,
			)
		}
	}
}

func (s *GateServer) Shutdown() error {
	return s.Router.Shutdown()
}
