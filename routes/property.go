package routes

import (
	"encoding/json"

	"homestays-server/models"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
)

type CreatePropertyInput struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Description   string   `json:"description" validate:"required"`
	PropertyType  string   `json:"propertyType" validate:"required,oneof=apartment house villa studio cottage room"`
	Address       string   `json:"address" validate:"required,max=255"`
	City          string   `json:"city" validate:"required,max=100"`
	Country       string   `json:"country" validate:"required,max=100"`
	PostalCode    string   `json:"postalCode" validate:"max=20"`
	Lat           float64  `json:"lat" validate:"gte=-90,lte=90"`
	Lng           float64  `json:"lng" validate:"gte=-180,lte=180"`
	Guests        int      `json:"guests" validate:"required,gte=1"`
	Bedrooms      int      `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms     int      `json:"bathrooms" validate:"required,gte=1"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gte=0"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"imageURL"`
	Images        []string `json:"images"`
}

func CreateProperty(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)

	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Arrays are stored as JSONB and must never be null
	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	images := input.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, _ := json.Marshal(images)

	active := true
	property := models.Property{
		HostID:        actorID,
		Title:         input.Title,
		Description:   input.Description,
		PropertyType:  input.PropertyType,
		Address:       input.Address,
		City:          input.City,
		Country:       input.Country,
		PostalCode:    input.PostalCode,
		Lat:           input.Lat,
		Lng:           input.Lng,
		Guests:        input.Guests,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		PricePerNight: input.PricePerNight,
		Amenities:     datatypes.JSON(amenitiesJSON),
		ImageURL:      input.ImageURL,
		Images:        datatypes.JSON(imagesJSON),
		IsActive:      &active,
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Property created successfully", "property": property})
}

func GetProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.
		Preload("Host").
		Preload("Reviews").
		Preload("Reviews.User").
		Preload("Reservations", "status <> ?", models.ReservationStatusCancelled).
		First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	ctx.JSON(property)
}

type UpdatePropertyInput struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	Description   *string  `json:"description"`
	PropertyType  *string  `json:"propertyType" validate:"omitempty,oneof=apartment house villa studio cottage room"`
	Address       *string  `json:"address" validate:"omitempty,max=255"`
	City          *string  `json:"city" validate:"omitempty,max=100"`
	Country       *string  `json:"country" validate:"omitempty,max=100"`
	PostalCode    *string  `json:"postalCode" validate:"omitempty,max=20"`
	Lat           *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng           *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	Guests        *int     `json:"guests" validate:"omitempty,gte=1"`
	Bedrooms      *int     `json:"bedrooms" validate:"omitempty,gte=1"`
	Bathrooms     *int     `json:"bathrooms" validate:"omitempty,gte=1"`
	PricePerNight *float64 `json:"pricePerNight" validate:"omitempty,gte=0"`
	Amenities     []string `json:"amenities"`
	ImageURL      *string  `json:"imageURL"`
	IsActive      *bool    `json:"isActive"`
}

func UpdateProperty(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	if property.HostID != actorID && !actorIsAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != nil {
		property.Title = *input.Title
	}
	if input.Description != nil {
		property.Description = *input.Description
	}
	if input.PropertyType != nil {
		property.PropertyType = *input.PropertyType
	}
	if input.Address != nil {
		property.Address = *input.Address
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.Country != nil {
		property.Country = *input.Country
	}
	if input.PostalCode != nil {
		property.PostalCode = *input.PostalCode
	}
	if input.Lat != nil {
		property.Lat = *input.Lat
	}
	if input.Lng != nil {
		property.Lng = *input.Lng
	}
	if input.Guests != nil {
		property.Guests = *input.Guests
	}
	if input.Bedrooms != nil {
		property.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		property.Bathrooms = *input.Bathrooms
	}
	// Changing the listed price never touches existing reservations;
	// they keep their snapshotted price_per_night.
	if input.PricePerNight != nil {
		property.PricePerNight = *input.PricePerNight
	}
	if input.Amenities != nil {
		amenitiesJSON, _ := json.Marshal(input.Amenities)
		property.Amenities = datatypes.JSON(amenitiesJSON)
	}
	if input.ImageURL != nil {
		property.ImageURL = *input.ImageURL
	}
	if input.IsActive != nil {
		property.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Property updated successfully", "property": property})
}

func DeleteProperty(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	id := ctx.Params().Get("id")

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	if property.HostID != actorID && !actorIsAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}

// GetMyProperties lists the authenticated host's own listings.
func GetMyProperties(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Property{}).Where("host_id = ?", actorID)

	var total int64
	q.Count(&total)

	var properties []models.Property
	if err := q.Preload("Reviews").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}
