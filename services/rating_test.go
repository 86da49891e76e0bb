package services

import (
	"testing"

	"homestays-server/models"
)

func reviewsWithStars(stars ...int) []models.Review {
	reviews := make([]models.Review, 0, len(stars))
	for _, s := range stars {
		reviews = append(reviews, models.Review{Stars: s})
	}
	return reviews
}

func TestAverageStars(t *testing.T) {
	tests := []struct {
		name      string
		reviews   []models.Review
		wantAvg   float64
		wantCount int
	}{
		{"no reviews resets to zero", nil, 0, 0},
		{"single five star", reviewsWithStars(5), 5.0, 1},
		{"exact mean", reviewsWithStars(4, 5), 4.5, 2},
		{"repeating decimal mean", reviewsWithStars(5, 4, 4), 13.0 / 3.0, 3},
		{"all ones", reviewsWithStars(1, 1, 1, 1), 1.0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := AverageStars(tt.reviews)
			if avg != tt.wantAvg {
				t.Errorf("avg = %v, want %v", avg, tt.wantAvg)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestValidateReviewInput(t *testing.T) {
	tests := []struct {
		name     string
		stars    int
		body     string
		wantKind ErrorKind
	}{
		{"valid", 5, "a lovely stay overall", 0},
		{"stars too low", 0, "a lovely stay overall", KindValidationFailed},
		{"stars too high", 6, "a lovely stay overall", KindValidationFailed},
		{"comment too short", 4, "too short", KindValidationFailed},
		{"comment exactly ten chars", 4, "just right", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReviewInput(tt.stars, tt.body)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Kind != tt.wantKind {
				t.Errorf("error = %v, want kind %d", err, tt.wantKind)
			}
		})
	}
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("x"), 404},
		{Unauthorized("x"), 403},
		{Invalid("x"), 422},
		{RuleViolation("x"), 422},
		{Persistence(nil), 500},
	}
	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("StatusCode() for kind %d = %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}
