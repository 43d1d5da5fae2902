package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"gorm.io/gorm"
)

// ListCustomers returns a page of customers with optional status filter and
// search over name, email and phone number.
func ListCustomers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parseLimitOffset(c)
		status := c.Query("status")
		search := c.Query("search")

		query := db.Model(&models.Customer{})
		if status != "" {
			query = query.Where("status = ?", status)
		}
		if search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR email ILIKE ? OR phone_number ILIKE ?", pattern, pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var customers []models.Customer
		if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&customers).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		items := make([]map[string]interface{}, len(customers))
		for i := range customers {
			items[i] = customers[i].Response()
		}

		response.Paginated(c, items, total, limit, offset)
	}
}

// GetCustomer returns one customer with their most recent bookings.
func GetCustomer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			response.Error(c, apperrors.NewValidation("Invalid customer ID"))
			return
		}

		var customer models.Customer
		if err := db.First(&customer, customerID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Customer not found"))
			return
		}

		var bookings []models.Booking
		if err := db.Where("customer_id = ?", customer.ID).
			Preload("Driver").
			Order("created_at DESC").
			Limit(10).
			Find(&bookings).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		recent := make([]map[string]interface{}, len(bookings))
		for i := range bookings {
			recent[i] = bookings[i].Response()
		}

		data := customer.Response()
		data["recentBookings"] = recent
		response.OK(c, data)
	}
}
