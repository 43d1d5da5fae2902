package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"gorm.io/gorm"
)

// DashboardStats returns booking counts by status plus today's totals.
func DashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		type statusCount struct {
			Status string
			Count  int64
		}

		var counts []statusCount
		if err := db.Model(&models.Booking{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&counts).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		byStatus := gin.H{}
		for _, status := range []models.BookingStatus{
			models.BookingStatusPending,
			models.BookingStatusMatched,
			models.BookingStatusTripStarted,
			models.BookingStatusCompleted,
			models.BookingStatusCancelled,
		} {
			byStatus[string(status)] = int64(0)
		}
		for _, row := range counts {
			byStatus[row.Status] = row.Count
		}

		today := time.Now().Truncate(24 * time.Hour)

		var todayBookings int64
		if err := db.Model(&models.Booking{}).
			Where("created_at >= ?", today).
			Count(&todayBookings).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var todayRevenue float64
		if err := db.Model(&models.Booking{}).
			Where("status = ? AND updated_at >= ?", models.BookingStatusCompleted, today).
			Select("COALESCE(SUM(total_fare), 0)").
			Scan(&todayRevenue).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var activeDrivers int64
		if err := db.Model(&models.Driver{}).
			Where("status = ?", models.DriverStatusActive).
			Count(&activeDrivers).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		response.OK(c, gin.H{
			"bookingsByStatus": byStatus,
			"todayBookings":    todayBookings,
			"todayRevenue":     todayRevenue,
			"activeDrivers":    activeDrivers,
		})
	}
}
