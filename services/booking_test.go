package services

import (
	"testing"
	"time"

	"homestays-server/models"
)

func day(offset int) time.Time {
	return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"single night", day(5), day(6), 1},
		{"three nights", day(5), day(8), 3},
		{"month boundary", time.Date(2026, 9, 29, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), 3},
		{"ignores time of day", day(5).Add(18 * time.Hour), day(8).Add(2 * time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
				t.Errorf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPriceQuote(t *testing.T) {
	property := &models.Property{Guests: 4, PricePerNight: 100}

	quote := PriceQuote(property, day(5), day(8))
	if quote.Nights != 3 {
		t.Errorf("Nights = %d, want 3", quote.Nights)
	}
	if quote.PricePerNight != 100 {
		t.Errorf("PricePerNight = %v, want 100", quote.PricePerNight)
	}
	if quote.TotalPrice != 300 {
		t.Errorf("TotalPrice = %v, want 300", quote.TotalPrice)
	}
	if quote.TotalPrice != float64(quote.Nights)*quote.PricePerNight {
		t.Errorf("TotalPrice %v is not Nights*PricePerNight", quote.TotalPrice)
	}
}

func TestRangesConflict(t *testing.T) {
	// Candidate range is [day(5), day(8)] in every case.
	aIn, aOut := day(5), day(8)

	tests := []struct {
		name string
		bIn  time.Time
		bOut time.Time
		want bool
	}{
		{"identical range", day(5), day(8), true},
		{"starts inside", day(6), day(10), true},
		{"ends inside", day(3), day(6), true},
		{"fully contains candidate", day(1), day(12), true},
		{"contained by candidate", day(6), day(7), true},
		{"well before", day(1), day(3), false},
		{"well after", day(10), day(12), false},
		// Endpoints are closed on both sides, so back-to-back stays
		// still count as conflicts.
		{"checkout touches candidate check-in", day(2), day(5), true},
		{"check-in touches candidate checkout", day(8), day(11), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RangesConflict(aIn, aOut, tt.bIn, tt.bOut); got != tt.want {
				t.Errorf("RangesConflict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateBookingRequest(t *testing.T) {
	active := true
	inactive := false
	now := day(0)
	property := &models.Property{Guests: 4, PricePerNight: 100, IsActive: &active}

	tests := []struct {
		name      string
		property  *models.Property
		checkIn   time.Time
		checkOut  time.Time
		numGuests int
		wantKind  ErrorKind
	}{
		{"valid request", property, day(5), day(8), 2, 0},
		{"inactive property", &models.Property{Guests: 4, IsActive: &inactive}, day(5), day(8), 2, KindNotFound},
		{"nil active flag", &models.Property{Guests: 4}, day(5), day(8), 2, KindNotFound},
		{"zero guests", property, day(5), day(8), 0, KindValidationFailed},
		{"check-in today", property, day(0), day(3), 2, KindValidationFailed},
		{"check-in in the past", property, day(-2), day(3), 2, KindValidationFailed},
		{"checkout equals check-in", property, day(5), day(5), 2, KindValidationFailed},
		{"checkout before check-in", property, day(8), day(5), 2, KindValidationFailed},
		{"too many guests", property, day(5), day(8), 5, KindBusinessRuleViolation},
		// Capacity is checked even when the dates would conflict with
		// nothing; availability is never consulted first.
		{"too many guests with far dates", property, day(50), day(53), 9, KindBusinessRuleViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBookingRequest(tt.property, tt.checkIn, tt.checkOut, tt.numGuests, now)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Kind != tt.wantKind {
				t.Errorf("Kind = %d, want %d", err.Kind, tt.wantKind)
			}
		})
	}
}

func TestCanCancel(t *testing.T) {
	now := day(0).Add(10 * time.Hour)

	tests := []struct {
		name        string
		reservation models.Reservation
		wantErr     bool
	}{
		{"upcoming confirmed", models.Reservation{Status: models.ReservationStatusConfirmed, CheckIn: day(5)}, false},
		{"upcoming pending", models.Reservation{Status: models.ReservationStatusPending, CheckIn: day(1)}, false},
		{"already cancelled", models.Reservation{Status: models.ReservationStatusCancelled, CheckIn: day(5)}, true},
		{"check-in already passed", models.Reservation{Status: models.ReservationStatusConfirmed, CheckIn: day(-1)}, true},
		{"check-in earlier today", models.Reservation{Status: models.ReservationStatusConfirmed, CheckIn: day(0)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanCancel(&tt.reservation, now)
			if (err != nil) != tt.wantErr {
				t.Errorf("CanCancel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Kind != KindBusinessRuleViolation {
				t.Errorf("Kind = %d, want business rule violation", err.Kind)
			}
		})
	}
}

func TestValidateStatusChange(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		reason  string
		wantErr bool
	}{
		{"confirm", "confirmed", "", false},
		{"complete", "completed", "", false},
		{"pending", "pending", "", false},
		{"cancel with reason", "cancelled", "host request", false},
		{"cancel without reason", "cancelled", "", true},
		{"unknown status", "rejected", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatusChange(tt.status, tt.reason)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStatusChange() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
