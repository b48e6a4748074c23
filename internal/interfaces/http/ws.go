package http

import (
	"github.com/labstack/echo/v4"
)

// SubscribeHandler hands the connection to the live update hub for the
// authenticated user. Blocks until the client disconnects.
func (s *Server) SubscribeHandler(c echo.Context) error {
	requester := identityFrom(c)

	return s.hub.Subscribe(c.Response(), c.Request(), requester.ID)
}
