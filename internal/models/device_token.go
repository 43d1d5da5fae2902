package models

import (
	"gorm.io/gorm"
)

// DeviceToken is an FCM registration token for a customer's device, used to
// push booking updates (e.g. cancellation) to the rider app.
type DeviceToken struct {
	gorm.Model
	CustomerID uint   `json:"customerId" gorm:"not null;index"`
	Token      string `json:"token" gorm:"uniqueIndex;not null"`
	Platform   string `json:"platform"` // ios, android
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}
