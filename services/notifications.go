package services

import (
	"fmt"
	"log"

	"homestays-server/models"
	"homestays-server/storage"
)

// NotificationService writes in-app notification rows for booking
// lifecycle events. Delivery (push, email) is out of scope; clients
// poll the notifications endpoint.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (ns *NotificationService) create(userID uint, notifType, title, message string, refType string, refID uint) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("notification write failed for user %d: %v", userID, err)
	}
}

// NotifyReservationCreated tells the host about a new confirmed booking.
func (ns *NotificationService) NotifyReservationCreated(reservation *models.Reservation, property *models.Property) {
	ns.create(
		property.HostID,
		"reservation_created",
		"New Reservation",
		fmt.Sprintf("New reservation for %s from %s to %s",
			property.Title,
			reservation.CheckIn.Format("Jan 2, 2006"),
			reservation.CheckOut.Format("Jan 2, 2006")),
		"reservation",
		reservation.ID,
	)
}

// NotifyReservationStatus tells the guest about a status change.
func (ns *NotificationService) NotifyReservationStatus(reservation *models.Reservation, propertyTitle string) {
	ns.create(
		reservation.GuestID,
		"reservation_status",
		"Reservation Status Updated",
		fmt.Sprintf("Your reservation for %s is now %s", propertyTitle, reservation.Status),
		"reservation",
		reservation.ID,
	)
}

// NotifyReservationCancelled tells the host the guest cancelled.
func (ns *NotificationService) NotifyReservationCancelled(reservation *models.Reservation, property *models.Property) {
	message := fmt.Sprintf("Reservation for %s was cancelled", property.Title)
	if reservation.CancellationReason != "" {
		message = fmt.Sprintf("%s: %s", message, reservation.CancellationReason)
	}
	ns.create(property.HostID, "reservation_cancelled", "Reservation Cancelled", message, "reservation", reservation.ID)
}

// NotifyReviewCreated tells the host a stay was reviewed.
func (ns *NotificationService) NotifyReviewCreated(review *models.Review, property *models.Property) {
	ns.create(
		property.HostID,
		"review_created",
		"New Review",
		fmt.Sprintf("%s received a %d-star review", property.Title, review.Stars),
		"review",
		review.ID,
	)
}
