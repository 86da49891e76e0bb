package routes

import (
	"time"

	"homestays-server/models"
	"homestays-server/services"
	"homestays-server/storage"
	"homestays-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateReviewInput struct {
	ReservationID uint   `json:"reservationID" validate:"required"`
	Stars         int    `json:"stars" validate:"required,min=1,max=5"`
	Body          string `json:"body" validate:"required,min=10,max=1000"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userID"`
	Stars     int       `json:"stars"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	User      struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		AvatarURL string `json:"avatarURL"`
	} `json:"user"`
}

// ListPropertyReviews returns a property's reviews with its derived
// rating summary.
func ListPropertyReviews(ctx iris.Context) {
	propertyID := ctx.Params().GetUintDefault("id", 0)
	if propertyID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	page, perPage := utils.Pagination(ctx)

	q := storage.DB.Model(&models.Review{}).Where("property_id = ?", propertyID)

	var total int64
	q.Count(&total)

	var reviews []models.Review
	if err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	reviewResponses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		resp := ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			Stars:     review.Stars,
			Body:      review.Body,
			CreatedAt: review.CreatedAt,
		}
		if review.User != nil {
			resp.User.FirstName = review.User.FirstName
			resp.User.LastName = review.User.LastName
			resp.User.AvatarURL = review.User.AvatarURL
		}
		reviewResponses = append(reviewResponses, resp)
	}

	ctx.JSON(iris.Map{
		"data": reviewResponses,
		"meta": utils.PageMeta{Page: page, PerPage: perPage, Total: total},
		"summary": iris.Map{
			"averageRating": property.Rating,
			"reviewCount":   property.ReviewsCount,
		},
	})
}

// CreateReview submits a review for the actor's completed stay.
func CreateReview(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review, engineErr := services.SubmitReview(storage.DB, actorID, input.ReservationID, input.Stars, input.Body)
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, review.PropertyID).Error; err == nil {
		services.NewNotificationService().NotifyReviewCreated(review, &property)
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"message": "Review created successfully", "review": review})
}

type UpdateReviewInput struct {
	Stars *int    `json:"stars" validate:"omitempty,min=1,max=5"`
	Body  *string `json:"body" validate:"omitempty,min=10,max=1000"`
}

// UpdateReview edits the actor's own review and re-derives the
// property rating.
func UpdateReview(ctx iris.Context) {
	actorID, _ := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID", ctx)
		return
	}

	var input UpdateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review, engineErr := services.UpdateReview(storage.DB, actorID, id, input.Stars, input.Body)
	if engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	ctx.JSON(iris.Map{"message": "Review updated successfully", "review": review})
}

// DeleteReview removes the actor's review and re-derives the property
// rating over whatever reviews remain.
func DeleteReview(ctx iris.Context) {
	actorID, actorIsAdmin := utils.Actor(ctx)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID", ctx)
		return
	}

	if engineErr := services.DeleteReview(storage.DB, actorID, actorIsAdmin, id); engineErr != nil {
		respondEngineError(ctx, engineErr)
		return
	}

	ctx.JSON(iris.Map{"message": "Review deleted successfully"})
}
