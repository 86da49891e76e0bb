package routes

import (
	"log"
	"time"

	"homestays-server/models"
	"homestays-server/services"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
)

// respondEngineError maps a booking-engine error onto the HTTP error
// surface. Persistence failures are logged but never exposed.
func respondEngineError(ctx iris.Context, err *services.Error) {
	if err.Kind == services.KindPersistenceFailure {
		log.Printf("persistence failure: %v", err.Unwrap())
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.CreateError(err.StatusCode(), err.Title(), err.Message, ctx)
}

type CreateReservationInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	CheckIn    string `json:"checkInDate" validate:"required"`
	CheckOut   string `json:"checkOutDate" validate:"required"`
	NumGuests  int    `json:"numberOfGuests" validate:"required,gte=1"`
	Note       string `json:"notes"`
}

// CreateReservation books a property for the authenticated guest. The
// engine validates dates, capacity, and availability, and confirms the
// booking atomically.
func CreateReservation(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)

	var input CreateReservationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, err := time.Parse(dateLayout, input.CheckIn)
	if err != nil {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error", "checkInDate must be a date (YYYY-MM-DD)", ctx)
		return
	}
	checkOut, err := time.Parse(dateLayout, input.CheckOut)
	if err != nil {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error", "checkOutDate must be a date (YYYY-MM-DD)", ctx)
		return
	}

	reservation, engineErr := services.CreateReservation(
		storage.DB, actorID, input.PropertyID, checkIn, checkOut, input.NumGuests, input.Note)
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	// Reload with relationships for the response
	storage.DB.Preload("Property").Preload("Guest").First(reservation, reservation.ID)

	if reservation.Property != nil {
		services.NewNotificationService().NotifyReservationCreated(reservation, reservation.Property)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Reservation created successfully", "reservation": reservation})
}

// GetUserReservations returns the authenticated user's reservations,
// optionally filtered by status.
func GetUserReservations(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Reservation{}).Where("guest_id = ?", actorID)
	if status := ctx.URLParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var reservations []models.Reservation
	if err := q.Preload("Property").Preload("Property.Host").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

// GetPropertyReservations returns the bookings of a property to its
// host (or an admin).
func GetPropertyReservations(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	propertyID := ctx.Params().Get("id")
	page, perPage := utils.Pagination(ctx)

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	if property.HostID != actorID && !actorIsAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	q := storage.DB.Model(&models.Reservation{}).Where("property_id = ?", propertyID)

	var total int64
	q.Count(&total)

	var reservations []models.Reservation
	if err := q.Preload("Guest").
		Order("check_in ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

// GetReservation returns a single reservation to its owner or an admin.
func GetReservation(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	id := ctx.Params().Get("id")

	var reservation models.Reservation
	if err := storage.DB.
		Preload("Property").Preload("Guest").Preload("Review").
		First(&reservation, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Reservation not found", ctx)
		return
	}

	if reservation.GuestID != actorID && !actorIsAdmin {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(reservation)
}

type UpdateReservationStatusInput struct {
	Status             string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateReservationStatus sets the status directly (owner or admin);
// cancelling this way requires a reason.
func UpdateReservationStatus(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input UpdateReservationStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, engineErr := services.ChangeReservationStatus(
		storage.DB, actorID, actorIsAdmin, id, input.Status, input.CancellationReason)
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	if err := storage.DB.Preload("Property").First(reservation, reservation.ID).Error; err == nil &&
		reservation.Property != nil {
		services.NewNotificationService().NotifyReservationStatus(reservation, reservation.Property.Title)
	}

	ctx.JSON(iris.Map{"message": "Reservation status updated successfully", "reservation": reservation})
}

type CancelReservationInput struct {
	Reason string `json:"reason"`
}

// CancelReservation cancels the requester's own upcoming reservation.
func CancelReservation(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid reservation ID", ctx)
		return
	}

	var input CancelReservationInput
	if err := ctx.ReadJSON(&input); err != nil && err.Error() != "EOF" {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	reservation, engineErr := services.CancelReservation(storage.DB, actorID, id, input.Reason, time.Now())
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	if err := storage.DB.Preload("Property").First(reservation, reservation.ID).Error; err == nil &&
		reservation.Property != nil {
		services.NewNotificationService().NotifyReservationCancelled(reservation, reservation.Property)
	}

	ctx.JSON(iris.Map{"message": "Reservation cancelled successfully", "reservation": reservation})
}

type ValidateAvailabilityInput struct {
	CheckIn  string `json:"checkInDate" validate:"required"`
	CheckOut string `json:"checkOutDate" validate:"required"`
}

// ValidateReservationAvailability pre-checks a date range and quotes
// its price without booking anything.
func ValidateReservationAvailability(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var input ValidateAvailabilityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	checkIn, parseErr := time.Parse(dateLayout, input.CheckIn)
	if parseErr != nil {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error", "checkInDate must be a date (YYYY-MM-DD)", ctx)
		return
	}
	checkOut, parseErr := time.Parse(dateLayout, input.CheckOut)
	if parseErr != nil {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error", "checkOutDate must be a date (YYYY-MM-DD)", ctx)
		return
	}
	if !checkIn.Before(checkOut) {
		utils.CreateError(iris.StatusUnprocessableEntity, "Validation Error", "checkInDate must be before checkOutDate", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	available, availErr := services.IsRangeAvailable(storage.DB, propertyID, checkIn, checkOut)
	if availErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !available {
		ctx.StatusCode(iris.StatusConflict)
		ctx.JSON(iris.Map{"ok": false, "message": "Selected dates are not available"})
		return
	}

	ctx.JSON(iris.Map{"ok": true, "quote": services.PriceQuote(&property, checkIn, checkOut)})
}
