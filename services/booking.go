package services

import (
	"errors"
	"time"

	"homestays-server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Day truncates a timestamp to its calendar day in UTC; reservations are
// tracked at day granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of whole nights between check-in and
// check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(Day(checkOut).Sub(Day(checkIn)).Hours() / 24)
}

// RangesConflict reports whether an existing stay [bIn, bOut] collides
// with a candidate range [aIn, aOut]. Endpoints are compared closed on
// both sides, so back-to-back stays (checkout day equal to the next
// check-in day) count as a conflict.
func RangesConflict(aIn, aOut, bIn, bOut time.Time) bool {
	aIn, aOut = Day(aIn), Day(aOut)
	bIn, bOut = Day(bIn), Day(bOut)

	between := func(t, lo, hi time.Time) bool {
		return !t.Before(lo) && !t.After(hi)
	}
	if between(bIn, aIn, aOut) {
		return true
	}
	if between(bOut, aIn, aOut) {
		return true
	}
	// Existing stay fully contains the candidate.
	return !bIn.After(aIn) && !bOut.Before(aOut)
}

// IsRangeAvailable checks the candidate range against every
// non-cancelled reservation of the property, using the same endpoint
// convention as RangesConflict.
func IsRangeAvailable(db *gorm.DB, propertyID uint, checkIn, checkOut time.Time) (bool, error) {
	checkIn, checkOut = Day(checkIn), Day(checkOut)

	var conflicts int64
	err := db.Model(&models.Reservation{}).
		Where("property_id = ? AND status <> ?", propertyID, models.ReservationStatusCancelled).
		Where("(check_in BETWEEN ? AND ?) OR (check_out BETWEEN ? AND ?) OR (check_in <= ? AND check_out >= ?)",
			checkIn, checkOut, checkIn, checkOut, checkIn, checkOut).
		Count(&conflicts).Error
	if err != nil {
		return false, err
	}
	return conflicts == 0, nil
}

// Quote is the price breakdown of a prospective stay. TotalPrice is
// always exactly Nights * PricePerNight; no fees or taxes are modeled.
type Quote struct {
	Nights        int     `json:"nights"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalPrice    float64 `json:"totalPrice"`
}

// PriceQuote snapshots the property's current nightly price for the
// given range.
func PriceQuote(property *models.Property, checkIn, checkOut time.Time) Quote {
	nights := Nights(checkIn, checkOut)
	return Quote{
		Nights:        nights,
		PricePerNight: property.PricePerNight,
		TotalPrice:    float64(nights) * property.PricePerNight,
	}
}

// ValidateBookingRequest runs every date and capacity guard that does
// not need the reservation table. The capacity check always runs before
// any availability query.
func ValidateBookingRequest(property *models.Property, checkIn, checkOut time.Time, numGuests int, now time.Time) *Error {
	if !property.Active() {
		return NotFound("Property not available")
	}
	if numGuests < 1 {
		return Invalid("number_of_guests must be a positive integer")
	}
	if !Day(checkIn).After(Day(now)) {
		return Invalid("check_in_date must be after today")
	}
	if !Day(checkOut).After(Day(checkIn)) {
		return Invalid("check_out_date must be after check_in_date")
	}
	if numGuests > property.Guests {
		return RuleViolation("Number of guests exceeds property limit")
	}
	return nil
}

// CreateReservation books the range and returns the confirmed
// reservation. The availability check and the insert run in one
// transaction holding a row lock on the property, so two concurrent
// requests for the same property cannot both pass the check.
func CreateReservation(db *gorm.DB, guestID, propertyID uint, checkIn, checkOut time.Time, numGuests int, note string) (*models.Reservation, *Error) {
	checkIn, checkOut = Day(checkIn), Day(checkOut)

	var reservation models.Reservation
	txErr := db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&property, propertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("Property not available")
			}
			return Persistence(err)
		}

		if guardErr := ValidateBookingRequest(&property, checkIn, checkOut, numGuests, time.Now()); guardErr != nil {
			return guardErr
		}

		available, err := IsRangeAvailable(tx, propertyID, checkIn, checkOut)
		if err != nil {
			return Persistence(err)
		}
		if !available {
			return RuleViolation("Dates not available")
		}

		quote := PriceQuote(&property, checkIn, checkOut)
		reservation = models.Reservation{
			PropertyID:    propertyID,
			GuestID:       guestID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			NumGuests:     numGuests,
			PricePerNight: quote.PricePerNight,
			Nights:        quote.Nights,
			TotalPrice:    quote.TotalPrice,
			Status:        models.ReservationStatusConfirmed,
			Note:          note,
		}
		if err := tx.Create(&reservation).Error; err != nil {
			return Persistence(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, asServiceError(txErr)
	}
	return &reservation, nil
}

// CanCancel holds the cancellation guards: only not-yet-cancelled
// reservations whose check-in is still in the future may be cancelled.
func CanCancel(reservation *models.Reservation, now time.Time) *Error {
	if reservation.Status == models.ReservationStatusCancelled {
		return RuleViolation("Reservation is already cancelled")
	}
	if !reservation.CheckIn.After(now) {
		return RuleViolation("Cannot cancel a reservation that has already started")
	}
	return nil
}

// CancelReservation cancels the requester's own reservation with an
// optional reason.
func CancelReservation(db *gorm.DB, actorID, reservationID uint, reason string, now time.Time) (*models.Reservation, *Error) {
	var reservation models.Reservation
	if err := db.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Reservation not found")
		}
		return nil, Persistence(err)
	}

	if reservation.GuestID != actorID {
		return nil, Unauthorized("Unauthorized")
	}
	if guardErr := CanCancel(&reservation, now); guardErr != nil {
		return nil, guardErr
	}

	reservation.Status = models.ReservationStatusCancelled
	reservation.CancellationReason = reason
	if err := db.Save(&reservation).Error; err != nil {
		return nil, Persistence(err)
	}
	return &reservation, nil
}

// ValidateStatusChange checks an administrative status update before it
// touches the store.
func ValidateStatusChange(status, reason string) *Error {
	if !models.ValidReservationStatus(status) {
		return Invalid("status must be one of pending, confirmed, cancelled, completed")
	}
	if status == models.ReservationStatusCancelled && reason == "" {
		return Invalid("cancellation_reason is required when cancelling")
	}
	return nil
}

// ChangeReservationStatus sets the status directly; the actor must own
// the reservation or be an administrator. Completion is only ever set
// through this path, never automatically.
func ChangeReservationStatus(db *gorm.DB, actorID uint, actorIsAdmin bool, reservationID uint, status, reason string) (*models.Reservation, *Error) {
	if guardErr := ValidateStatusChange(status, reason); guardErr != nil {
		return nil, guardErr
	}

	var reservation models.Reservation
	if err := db.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Reservation not found")
		}
		return nil, Persistence(err)
	}

	if reservation.GuestID != actorID && !actorIsAdmin {
		return nil, Unauthorized("Unauthorized")
	}

	reservation.Status = status
	if status == models.ReservationStatusCancelled {
		reservation.CancellationReason = reason
	} else {
		reservation.CancellationReason = ""
	}
	if err := db.Save(&reservation).Error; err != nil {
		return nil, Persistence(err)
	}
	return &reservation, nil
}

func asServiceError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return Persistence(err)
}
