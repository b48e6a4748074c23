package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sharebnb/internal/application/services"
	"sharebnb/internal/entities"
	"sharebnb/internal/interfaces/ws"
)

type CommandSender interface {
	Send(ctx context.Context, command any) error
}

type Server struct {
	e    *echo.Echo
	addr string

	ordersService *services.OrdersService
	commandBus    CommandSender
	hub           *ws.Hub
	jwtSecret     []byte
}

func NewServer(
	e *echo.Echo,
	addr string,
	ordersService *services.OrdersService,
	commandBus CommandSender,
	hub *ws.Hub,
	jwtSecret []byte,
	routerIsRunning func() bool,
) *Server {
	srv := &Server{
		e:             e,
		addr:          addr,
		ordersService: ordersService,
		commandBus:    commandBus,
		hub:           hub,
		jwtSecret:     jwtSecret,
	}

	e.HTTPErrorHandler = srv.handleError

	api := e.Group("/api")
	api.GET("/orders", srv.GetOrdersHandler)
	api.GET("/orders/:id", srv.GetOrderHandler)
	api.POST("/orders", srv.CreateOrderHandler, srv.RequireAuth)
	api.PUT("/orders/:id/status", srv.UpdateOrderStatusHandler, srv.RequireAuth)
	api.DELETE("/orders/:id", srv.DeleteOrderHandler, srv.RequireAuth)

	api.POST("/workflows/order/confirmation", srv.TriggerConfirmationHandler)

	e.GET("/ws", srv.SubscribeHandler, srv.RequireAuth)

	e.GET("/health", func(c echo.Context) error {
		if !routerIsRunning() {
			return c.String(http.StatusServiceUnavailable, "router is not running")
		}
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.FromContext(c.Request().Context()).
				WithField("path", c.Request().URL.Path).
				Info("Handling a request")

			err := next(c)

			if err != nil {
				log.FromContext(c.Request().Context()).
					WithField("error", err).
					Error("Request handling error")
			}

			return err
		}
	})
	return srv
}

// handleError maps domain errors onto HTTP statuses so handlers can return
// repository and service errors as-is.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var (
		httpErr       *echo.HTTPError
		validationErr entities.ValidationError
	)

	switch {
	case errors.As(err, &httpErr):
		s.e.DefaultHTTPErrorHandler(err, c)
	case errors.As(err, &validationErr):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case errors.Is(err, entities.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, entities.ErrForbidden):
		_ = c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	default:
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (s *Server) Start() error {
	err := s.e.Start(s.addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
