package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sharebnb/internal/entities"
)

type CreateOrderRequest struct {
	UserID       string    `json:"userId"`
	StayID       string    `json:"stayId"`
	HostID       string    `json:"hostId"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Guests       int       `json:"guests"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       string    `json:"status"`
	ContactEmail string    `json:"contactEmail"`
}

func (s *Server) CreateOrderHandler(c echo.Context) error {
	ctx := c.Request().Context()
	requester := identityFrom(c)

	var request CreateOrderRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	if request.UserID == "" {
		request.UserID = requester.ID
	}

	order, err := s.ordersService.RequestOrder(ctx, requester, entities.CreateOrder{
		UserID:       request.UserID,
		StayID:       request.StayID,
		HostID:       request.HostID,
		StartDate:    request.StartDate,
		EndDate:      request.EndDate,
		Guests:       request.Guests,
		TotalPrice:   request.TotalPrice,
		Status:       entities.OrderStatus(request.Status),
		ContactEmail: request.ContactEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}
