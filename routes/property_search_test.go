package routes

import (
	"testing"
	"time"
)

func TestPropertyFilters(t *testing.T) {
	base := 1 // the active-listing filter is always present

	tests := []struct {
		name   string
		params SearchParams
		want   int
	}{
		{"no filters", SearchParams{}, base},
		{"city only", SearchParams{City: "Lisbon"}, base + 1},
		{"price range counts once", SearchParams{MinPrice: 50, MaxPrice: 150}, base + 1},
		{"min price alone", SearchParams{MinPrice: 50}, base + 1},
		{
			"all filters",
			SearchParams{
				City:         "Lisbon",
				Country:      "Portugal",
				Search:       "sea view",
				PropertyType: "apartment",
				MinPrice:     50,
				MaxPrice:     150,
				Bedrooms:     2,
				Guests:       4,
				CheckIn:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
				CheckOut:     time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
			},
			base + 8,
		},
		{"check-in without checkout is ignored", SearchParams{CheckIn: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)}, base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(propertyFilters(tt.params)); got != tt.want {
				t.Errorf("len(propertyFilters()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSearchOrder(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{"rating", "rating DESC, id DESC"},
		{"price_asc", "price_per_night ASC, id DESC"},
		{"price_desc", "price_per_night DESC, id DESC"},
		{"newest", "created_at DESC"},
		{"", "created_at DESC"},
		{"garbage", "created_at DESC"},
	}
	for _, tt := range tests {
		if got := searchOrder(tt.sortBy); got != tt.want {
			t.Errorf("searchOrder(%q) = %q, want %q", tt.sortBy, got, tt.want)
		}
	}
}
