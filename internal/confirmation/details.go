package confirmation

import (
	"time"

	"sharebnb/internal/entities"
)

// fallbackGuestName labels guests whose identity could not be resolved.
const fallbackGuestName = "Guest"

// fallbackStayName labels stays whose record could not be resolved.
const fallbackStayName = "Your stay"

// Details are the fully resolved facts the composer needs. Empty GuestEmail
// or zero dates mean there is nothing to notify.
type Details struct {
	GuestEmail string
	GuestName  string
	StayName   string
	Address    string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	ManageURL  string
}

// resolveDetails collapses each fact through its override-then-loaded-then-
// default chain: snapshot value first, then the loaded record, then a
// literal fallback. Pure; no IO.
func resolveDetails(
	snapshot entities.ConfirmationSnapshot,
	order *entities.Order,
	stay *entities.Stay,
	guest *entities.User,
	clientURL string,
) Details {
	d := Details{
		GuestEmail: snapshot.GuestEmail,
		GuestName:  snapshot.GuestName,
		StayName:   snapshot.StayName,
		Address:    snapshot.Address,
		ManageURL:  snapshot.ManageURL,
	}

	if d.GuestEmail == "" && order != nil {
		d.GuestEmail = order.ContactEmail
	}
	if d.GuestEmail == "" && guest != nil {
		d.GuestEmail = guest.Email
	}

	if d.GuestName == "" && guest != nil {
		d.GuestName = guest.Fullname
		if d.GuestName == "" {
			d.GuestName = guest.Username
		}
	}
	if d.GuestName == "" {
		d.GuestName = fallbackGuestName
	}

	if d.StayName == "" && stay != nil {
		d.StayName = stay.Name
	}
	if d.StayName == "" {
		d.StayName = fallbackStayName
	}

	if d.Address == "" && stay != nil {
		d.Address = stay.Address
		if d.Address == "" {
			d.Address = stay.City
		}
	}

	if snapshot.StartDate != nil {
		d.StartDate = *snapshot.StartDate
	} else if order != nil {
		d.StartDate = order.StartDate
	}
	if snapshot.EndDate != nil {
		d.EndDate = *snapshot.EndDate
	} else if order != nil {
		d.EndDate = order.EndDate
	}

	if snapshot.TotalPrice != nil {
		d.TotalPrice = *snapshot.TotalPrice
	} else if order != nil {
		d.TotalPrice = order.TotalPrice
	}

	if d.ManageURL == "" {
		orderID := ""
		if order != nil {
			orderID = order.ID.Hex()
		}
		d.ManageURL = clientURL + "/trips/" + orderID
	}

	return d
}
