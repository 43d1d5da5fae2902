package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"gorm.io/gorm"
)

// ListDrivers returns a page of drivers with optional status filter and search
// over name, phone number and car plate.
func ListDrivers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, offset := parseLimitOffset(c)
		status := c.Query("status")
		search := c.Query("search")

		query := db.Model(&models.Driver{})
		if status != "" {
			query = query.Where("status = ?", status)
		}
		if search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name ILIKE ? OR phone_number ILIKE ? OR car_plate ILIKE ?", pattern, pattern, pattern)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var drivers []models.Driver
		if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&drivers).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		items := make([]map[string]interface{}, len(drivers))
		for i := range drivers {
			items[i] = drivers[i].Response()
		}

		response.Paginated(c, items, total, limit, offset)
	}
}
