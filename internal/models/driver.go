package models

import (
	"gorm.io/gorm"
)

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

type Driver struct {
	gorm.Model
	Name        string       `json:"name" gorm:"not null"`
	PhoneNumber string       `json:"phoneNumber"`
	CarPlate    string       `json:"carPlate"`
	CarMake     string       `json:"carMake"`
	CarColor    string       `json:"carColor"`
	Status      DriverStatus `json:"status" gorm:"not null;default:'active';index"`
	Rating      float64      `json:"rating"`
}

func (Driver) TableName() string {
	return "drivers"
}

// Response projects a driver into the camel-case API shape.
func (d *Driver) Response() map[string]interface{} {
	return map[string]interface{}{
		"id":          d.ID,
		"name":        d.Name,
		"phoneNumber": d.PhoneNumber,
		"carPlate":    d.CarPlate,
		"carMake":     d.CarMake,
		"carColor":    d.CarColor,
		"status":      string(d.Status),
		"rating":      d.Rating,
	}
}
