package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/luxride/admin-backend/internal/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

var (
	FirebaseApp     *firebase.App
	MessagingClient *messaging.Client
)

// InitFirebase initializes the Firebase Admin SDK. Push notifications are
// optional; an unset credentials path disables them without failing startup.
func InitFirebase(credentialsPath string, logger *zap.Logger) error {
	if credentialsPath == "" {
		logger.Warn("FIREBASE_SERVICE_ACCOUNT_PATH not set, push notifications disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("error getting messaging client: %v", err)
	}

	FirebaseApp = app
	MessagingClient = client
	logger.Info("Firebase Cloud Messaging initialized")
	return nil
}

// NotifyBookingCancelled pushes a cancellation notice to all of the owning
// customer's devices. Best effort: failures are logged, never surfaced to the
// cancel request.
func NotifyBookingCancelled(ctx context.Context, db *gorm.DB, logger *zap.Logger, booking *models.Booking) {
	if MessagingClient == nil {
		return
	}

	var tokens []models.DeviceToken
	if err := db.WithContext(ctx).Where("customer_id = ?", booking.CustomerID).Find(&tokens).Error; err != nil {
		logger.Warn("failed to load device tokens", zap.Uint("customerId", booking.CustomerID), zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token.Token,
			Notification: &messaging.Notification{
				Title: "訂單已取消",
				Body:  fmt.Sprintf("您的訂單 %s 已取消", booking.BookingNumber),
			},
			Data: map[string]string{
				"type":          "booking_cancelled",
				"bookingId":     fmt.Sprint(booking.ID),
				"bookingNumber": booking.BookingNumber,
				"reason":        booking.CancellationReason,
			},
		}

		if _, err := MessagingClient.Send(ctx, message); err != nil {
			logger.Warn("failed to send cancellation push",
				zap.Uint("bookingId", booking.ID),
				zap.String("token", token.Token[:min(8, len(token.Token))]),
				zap.Error(err),
			)
		}
	}
}
