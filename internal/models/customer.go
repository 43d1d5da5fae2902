package models

import (
	"gorm.io/gorm"
)

type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusSuspended CustomerStatus = "suspended"
)

type Customer struct {
	gorm.Model
	UID         string         `json:"uid" gorm:"uniqueIndex;not null"` // auth-provider identifier
	Name        string         `json:"name" gorm:"not null"`
	Email       string         `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber string         `json:"phoneNumber"`
	Status      CustomerStatus `json:"status" gorm:"not null;default:'active';index"`
}

func (Customer) TableName() string {
	return "customers"
}

// Response projects a customer into the camel-case API shape.
func (c *Customer) Response() map[string]interface{} {
	return map[string]interface{}{
		"id":          c.ID,
		"uid":         c.UID,
		"name":        c.Name,
		"email":       c.Email,
		"phoneNumber": c.PhoneNumber,
		"status":      string(c.Status),
		"createdAt":   c.CreatedAt,
	}
}
