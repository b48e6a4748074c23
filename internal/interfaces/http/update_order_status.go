package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sharebnb/internal/entities"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateOrderStatusHandler(c echo.Context) error {
	ctx := c.Request().Context()
	requester := identityFrom(c)

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, "id is required")
	}

	var request UpdateOrderStatusRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	view, err := s.ordersService.ChangeStatus(ctx, requester, orderID, entities.OrderStatus(request.Status))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

func (s *Server) DeleteOrderHandler(c echo.Context) error {
	ctx := c.Request().Context()
	requester := identityFrom(c)

	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, "id is required")
	}

	err := s.ordersService.RemoveOrder(ctx, requester, orderID)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
