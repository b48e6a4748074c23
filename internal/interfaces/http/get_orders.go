package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sharebnb/internal/entities"
)

func (s *Server) GetOrdersHandler(c echo.Context) error {
	orders, err := s.ordersService.ListOrders(c.Request().Context(), entities.OrderFilter{
		HostID: c.QueryParam("hostId"),
		UserID: c.QueryParam("userId"),
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (s *Server) GetOrderHandler(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, "id is required")
	}

	order, err := s.ordersService.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
