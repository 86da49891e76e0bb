package routes

import (
	"strings"
	"time"

	"homestays-server/models"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// SearchParams holds the parsed property search filters.
type SearchParams struct {
	City         string
	Country      string
	Search       string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
	Bedrooms     int
	Guests       int
	CheckIn      time.Time
	CheckOut     time.Time
	SortBy       string
}

const dateLayout = "2006-01-02"

func parseSearchParams(ctx iris.Context) SearchParams {
	params := SearchParams{
		City:         strings.TrimSpace(ctx.URLParam("city")),
		Country:      strings.TrimSpace(ctx.URLParam("country")),
		Search:       strings.TrimSpace(ctx.URLParam("search")),
		PropertyType: strings.TrimSpace(ctx.URLParam("property_type")),
		SortBy:       strings.ToLower(strings.TrimSpace(ctx.URLParam("sort_by"))),
	}
	params.MinPrice = ctx.URLParamFloat64Default("min_price", 0)
	params.MaxPrice = ctx.URLParamFloat64Default("max_price", 0)
	params.Bedrooms = ctx.URLParamIntDefault("bedrooms", 0)
	params.Guests = ctx.URLParamIntDefault("guests", 0)

	if in, err := time.Parse(dateLayout, ctx.URLParam("check_in_date")); err == nil {
		params.CheckIn = in
	}
	if out, err := time.Parse(dateLayout, ctx.URLParam("check_out_date")); err == nil {
		params.CheckOut = out
	}
	return params
}

// propertyFilters builds the ordered predicate chain for the search;
// each entry is a pure scope applied left-to-right.
func propertyFilters(params SearchParams) []func(*gorm.DB) *gorm.DB {
	filters := []func(*gorm.DB) *gorm.DB{
		func(db *gorm.DB) *gorm.DB {
			return db.Where("COALESCE(is_active, ?) = ?", true, true)
		},
	}

	if params.City != "" {
		city := params.City
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("city ILIKE ?", "%"+city+"%")
		})
	}
	if params.Country != "" {
		country := params.Country
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("country ILIKE ?", "%"+country+"%")
		})
	}
	if params.Search != "" {
		search := "%" + params.Search + "%"
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("title ILIKE ? OR description ILIKE ?", search, search)
		})
	}
	if params.PropertyType != "" {
		propertyType := params.PropertyType
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("property_type = ?", propertyType)
		})
	}
	if params.MinPrice > 0 || params.MaxPrice > 0 {
		minPrice, maxPrice := params.MinPrice, params.MaxPrice
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			if minPrice > 0 {
				db = db.Where("price_per_night >= ?", minPrice)
			}
			if maxPrice > 0 {
				db = db.Where("price_per_night <= ?", maxPrice)
			}
			return db
		})
	}
	if params.Bedrooms > 0 {
		bedrooms := params.Bedrooms
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("bedrooms >= ?", bedrooms)
		})
	}
	if params.Guests > 0 {
		guests := params.Guests
		filters = append(filters, func(db *gorm.DB) *gorm.DB {
			return db.Where("guests >= ?", guests)
		})
	}
	if !params.CheckIn.IsZero() && !params.CheckOut.IsZero() {
		checkIn, checkOut := params.CheckIn, params.CheckOut
		filters = append(filters, availabilityFilter(checkIn, checkOut))
	}

	return filters
}

// availabilityFilter excludes properties with a conflicting
// non-cancelled reservation, using the same closed-endpoint overlap
// predicate as the booking engine.
func availabilityFilter(checkIn, checkOut time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.Reservation{}).
			Select("property_id").
			Where("status <> ?", models.ReservationStatusCancelled).
			Where("(check_in BETWEEN ? AND ?) OR (check_out BETWEEN ? AND ?) OR (check_in <= ? AND check_out >= ?)",
				checkIn, checkOut, checkIn, checkOut, checkIn, checkOut)
		return db.Where("properties.id NOT IN (?)", sub)
	}
}

func searchOrder(sortBy string) string {
	switch sortBy {
	case "rating":
		return "rating DESC, id DESC"
	case "price_asc":
		return "price_per_night ASC, id DESC"
	case "price_desc":
		return "price_per_night DESC, id DESC"
	default:
		return "created_at DESC"
	}
}

// SearchProperties handles listing search with filters, sorting, and
// pagination.
func SearchProperties(ctx iris.Context) {
	params := parseSearchParams(ctx)
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Property{})
	for _, filter := range propertyFilters(params) {
		q = filter(q)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var properties []models.Property
	if err := q.Preload("Host").
		Order(searchOrder(params.SortBy)).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}
