package routes

import (
	"homestays-server/models"
	"homestays-server/services"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
)

// Admin endpoints. All are mounted behind the admin-only middleware and
// every mutation leaves an audit trail.

func AdminListUsers(ctx iris.Context) {
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.User{})
	if search := ctx.URLParam("q"); search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

func AdminListProperties(ctx iris.Context) {
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Property{})
	if city := ctx.URLParam("city"); city != "" {
		q = q.Where("city ILIKE ?", "%"+city+"%")
	}

	var total int64
	q.Count(&total)

	var properties []models.Property
	if err := q.Preload("Host").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func AdminListReservations(ctx iris.Context) {
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Reservation{})
	if status := ctx.URLParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	q.Count(&total)

	var reservations []models.Reservation
	if err := q.Preload("Property").Preload("Guest").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reservations).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, reservations, page, perPage, total)
}

// AdminUpdateReservationStatus lets an administrator force any status,
// the usual path for marking stays completed.
func AdminUpdateReservationStatus(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
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

	var before models.Reservation
	if err := storage.DB.First(&before, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Reservation not found", ctx)
		return
	}

	reservation, engineErr := services.ChangeReservationStatus(
		storage.DB, actorID, true, id, input.Status, input.CancellationReason)
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	utils.Audit(ctx, "reservation.status_update", "reservation", reservation.ID,
		iris.Map{"status": before.Status}, iris.Map{"status": reservation.Status})

	if err := storage.DB.Preload("Property").First(reservation, reservation.ID).Error; err == nil &&
		reservation.Property != nil {
		services.NewNotificationService().NotifyReservationStatus(reservation, reservation.Property.Title)
	}

	ctx.JSON(iris.Map{"message": "Reservation status updated successfully", "reservation": reservation})
}

// AdminDeleteReview removes any review; the property rating is
// recomputed over the remaining set.
func AdminDeleteReview(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID", ctx)
		return
	}

	var before models.Review
	if err := storage.DB.First(&before, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Review not found", ctx)
		return
	}

	if engineErr := services.DeleteReview(storage.DB, actorID, true, id); engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	utils.Audit(ctx, "review.delete", "review", id, before, nil)

	ctx.JSON(iris.Map{"message": "Review deleted successfully"})
}

// AdminStats returns headline marketplace counts.
func AdminStats(ctx iris.Context) {
	var users, properties, reservations, reviews int64
	storage.DB.Model(&models.User{}).Count(&users)
	storage.DB.Model(&models.Property{}).Count(&properties)
	storage.DB.Model(&models.Reservation{}).Count(&reservations)
	storage.DB.Model(&models.Review{}).Count(&reviews)

	var byStatus []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	storage.DB.Model(&models.Reservation{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus)

	ctx.JSON(iris.Map{
		"users":                users,
		"properties":           properties,
		"reservations":         reservations,
		"reviews":              reviews,
		"reservationsByStatus": byStatus,
	})
}
