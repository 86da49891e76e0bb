package routes

import (
	"time"

	"homestays-server/models"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
)

// GetNotifications lists the authenticated user's notifications,
// newest first.
func GetNotifications(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Notification{}).Where("user_id = ?", actorID)
	if ctx.URLParamBoolDefault("unread", false) {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	q.Count(&total)

	var notifications []models.Notification
	if err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, notifications, page, perPage, total)
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid notification ID", ctx)
		return
	}

	var notification models.Notification
	if err := storage.DB.Where("id = ? AND user_id = ?", id, actorID).First(&notification).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notification)
}
