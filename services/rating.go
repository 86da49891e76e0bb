package services

import (
	"errors"

	"homestays-server/models"

	"gorm.io/gorm"
)

// AverageStars computes the exact arithmetic mean of the review stars.
// An empty set averages to 0.
func AverageStars(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	var total float64
	for _, review := range reviews {
		total += float64(review.Stars)
	}
	return total / float64(len(reviews)), len(reviews)
}

// RecomputePropertyRating reloads every review attached to the property
// and rewrites the derived rating and reviews_count. Runs after each
// review create, update, or delete.
func RecomputePropertyRating(db *gorm.DB, propertyID uint) error {
	var reviews []models.Review
	if err := db.Where("property_id = ?", propertyID).Find(&reviews).Error; err != nil {
		return err
	}

	rating, count := AverageStars(reviews)
	return db.Model(&models.Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"reviews_count": count,
		}).Error
}

// ValidateReviewInput checks stars and comment length.
func ValidateReviewInput(stars int, body string) *Error {
	if stars < 1 || stars > 5 {
		return Invalid("stars must be between 1 and 5")
	}
	if len(body) < 10 {
		return Invalid("comment must be at least 10 characters")
	}
	return nil
}

// SubmitReview creates a review for a completed stay owned by the actor
// and recomputes the property's rating in the same transaction.
func SubmitReview(db *gorm.DB, actorID, reservationID uint, stars int, body string) (*models.Review, *Error) {
	if guardErr := ValidateReviewInput(stars, body); guardErr != nil {
		return nil, guardErr
	}

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
	if reservation.Status != models.ReservationStatusCompleted {
		return nil, RuleViolation("Can only review completed reservations")
	}

	var existing models.Review
	err := db.Where("reservation_id = ?", reservationID).First(&existing).Error
	if err == nil {
		return nil, RuleViolation("Review already exists for this reservation")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Persistence(err)
	}

	review := models.Review{
		ReservationID: reservationID,
		UserID:        actorID,
		PropertyID:    reservation.PropertyID,
		Stars:         stars,
		Body:          body,
	}
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return Persistence(err)
		}
		if err := RecomputePropertyRating(tx, reservation.PropertyID); err != nil {
			return Persistence(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, asServiceError(txErr)
	}
	return &review, nil
}

// UpdateReview edits the actor's own review; nil fields are left
// untouched. The property rating is recomputed afterwards.
func UpdateReview(db *gorm.DB, actorID, reviewID uint, stars *int, body *string) (*models.Review, *Error) {
	var review models.Review
	if err := db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Review not found")
		}
		return nil, Persistence(err)
	}

	if review.UserID != actorID {
		return nil, Unauthorized("Unauthorized")
	}

	if stars != nil {
		review.Stars = *stars
	}
	if body != nil {
		review.Body = *body
	}
	if guardErr := ValidateReviewInput(review.Stars, review.Body); guardErr != nil {
		return nil, guardErr
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return Persistence(err)
		}
		if err := RecomputePropertyRating(tx, review.PropertyID); err != nil {
			return Persistence(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, asServiceError(txErr)
	}
	return &review, nil
}

// DeleteReview removes the actor's review (admins may remove any) and
// recomputes the rating over the remaining set. Deleting the last
// review resets the property rating to 0.
func DeleteReview(db *gorm.DB, actorID uint, actorIsAdmin bool, reviewID uint) *Error {
	var review models.Review
	if err := db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Review not found")
		}
		return Persistence(err)
	}

	if review.UserID != actorID && !actorIsAdmin {
		return Unauthorized("Unauthorized")
	}

	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return Persistence(err)
		}
		if err := RecomputePropertyRating(tx, review.PropertyID); err != nil {
			return Persistence(err)
		}
		return nil
	})
	if txErr != nil {
		return asServiceError(txErr)
	}
	return nil
}
