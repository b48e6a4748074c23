package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"sharebnb/internal/entities"
)

type TriggerConfirmationRequest struct {
	OrderID  string                        `json:"orderId"`
	Snapshot entities.ConfirmationSnapshot `json:"snapshot"`
}

// TriggerConfirmationHandler enqueues a confirmation workflow run. Delivery
// is at-least-once through the broker; the handler only confirms enqueueing.
func (s *Server) TriggerConfirmationHandler(c echo.Context) error {
	var request TriggerConfirmationRequest
	err := c.Bind(&request)
	if err != nil {
		return err
	}

	if request.OrderID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"reason": "orderId is required",
		})
	}

	err = s.commandBus.Send(c.Request().Context(), entities.SendOrderConfirmation_v1{
		Header:   entities.NewEventHeader(),
		OrderID:  request.OrderID,
		Snapshot: request.Snapshot,
	})
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusAccepted)
}
