package notifications

import (
	"context"
	"errors"
	"fmt"

	"hopskip/internal/domain/pushtokens"

	"github.com/9ssi7/exponent"
)

// Category is the closed set of notification categories. Anything outside
// this set is rejected before a message is built.
type Category string

const (
	CategoryBooking  Category = "booking"
	CategoryCredit   Category = "credit"
	CategorySchedule Category = "schedule"
	CategoryGeneral  Category = "general"
)

func ValidCategory(c Category) bool {
	switch c {
	case CategoryBooking, CategoryCredit, CategorySchedule, CategoryGeneral:
		return true
	}
	return false
}

type BookingEvent string

const (
	BookingFrozen      BookingEvent = "FROZEN"
	BookingReactivated BookingEvent = "REACTIVATED"
	BookingCancelled   BookingEvent = "CANCELLED"
	WaitingPromoted    BookingEvent = "WAITING_PROMOTED"
	WaitingRemoved     BookingEvent = "WAITING_REMOVED"
	CreditIssued       BookingEvent = "CREDIT_ISSUED"
)

// SendBookingNotification pushes a transition notice to every device the
// admin has registered. Callers treat a failure here as log-and-continue;
// a lost push never aborts the transition that triggered it.
func SendBookingNotification(ctx context.Context, push PushSender, tokens pushtokens.Store, adminID int64, event BookingEvent, bookingRef string) error {
	tokensMap, err := tokens.GetTokensByAdminIDs(ctx, []int64{adminID})
	if err != nil {
		return err
	}
	deviceTokens := tokensMap[adminID]
	if len(deviceTokens) == 0 {
		return errors.New("no push tokens")
	}

	var title, body string
	category := CategoryBooking
	switch event {
	case BookingFrozen:
		title = "Booking Frozen"
		body = fmt.Sprintf("Booking %s has been frozen", bookingRef)
	case BookingReactivated:
		title = "Booking Reactivated"
		body = fmt.Sprintf("Booking %s is active again", bookingRef)
	case BookingCancelled:
		title = "Booking Cancelled"
		body = fmt.Sprintf("Booking %s has been cancelled", bookingRef)
	case WaitingPromoted:
		title = "Waiting List Promotion"
		body = fmt.Sprintf("Booking %s moved off the waiting list", bookingRef)
	case WaitingRemoved:
		title = "Waiting List Removal"
		body = fmt.Sprintf("Booking %s was removed from the waiting list", bookingRef)
	case CreditIssued:
		title = "Credit Issued"
		body = fmt.Sprintf("A credit was issued for booking %s", bookingRef)
		category = CategoryCredit
	default:
		title = "Booking Update"
		body = fmt.Sprintf("Booking %s has an update", bookingRef)
	}

	msgs := make([]*exponent.Message, 0, len(deviceTokens))
	for _, t := range deviceTokens {
		token := exponent.Token(t)
		msgs = append(msgs, &exponent.Message{
			To:    []*exponent.Token{&token},
			Title: title,
			Body:  body,
			Data: map[string]string{
				"category":   string(category),
				"event":      string(event),
				"bookingRef": bookingRef,
				"screen":     "admin-bookings-screen",
			},
		})
	}

	_, err = push.Publish(ctx, msgs)
	return err
}
