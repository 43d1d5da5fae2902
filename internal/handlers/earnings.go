package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/services"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// parseDateRange validates the startDate/endDate query pair. Missing dates,
// malformed dates and an inverted range are all INVALID_PARAMS; nothing
// touches the database before this passes.
func parseDateRange(startStr, endStr string) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return start, end, apperrors.NewValidation("startDate and endDate are required")
	}
	start, parseErr := time.Parse(dateLayout, startStr)
	if parseErr != nil {
		return start, end, apperrors.NewValidation("startDate must be formatted as YYYY-MM-DD")
	}
	end, parseErr = time.Parse(dateLayout, endStr)
	if parseErr != nil {
		return start, end, apperrors.NewValidation("endDate must be formatted as YYYY-MM-DD")
	}
	if start.After(end) {
		return start, end, apperrors.NewValidation("startDate must not be after endDate")
	}
	return start, end, nil
}

type earningsSummaryRow struct {
	TotalBookings      int64   `json:"totalBookings"`
	CompletedBookings  int64   `json:"completedBookings"`
	CancelledBookings  int64   `json:"cancelledBookings"`
	GrossRevenue       float64 `json:"grossRevenue"`
	PlatformCommission float64 `json:"platformCommission"`
	DriverPayout       float64 `json:"driverPayout"`
}

type driverRankingRow struct {
	DriverID       int64   `json:"driverId"`
	DriverName     string  `json:"driverName"`
	CompletedTrips int64   `json:"completedTrips"`
	GrossEarnings  float64 `json:"grossEarnings"`
	NetEarnings    float64 `json:"netEarnings"`
}

// EarningsSummary aggregates bookings over a date range via the
// admin_earnings_summary stored procedure.
func EarningsSummary(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := parseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			response.Error(c, err)
			return
		}

		var row earningsSummaryRow
		if err := db.Raw("SELECT * FROM admin_earnings_summary(?, ?)",
			start.Format(dateLayout), end.Format(dateLayout)).Scan(&row).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		response.OK(c, gin.H{
			"startDate": start.Format(dateLayout),
			"endDate":   end.Format(dateLayout),
			"summary":   row,
		})
	}
}

// EarningsRanking ranks drivers by completed-trip earnings over a date range
// via the admin_driver_earnings_ranking stored procedure.
func EarningsRanking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := parseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			response.Error(c, err)
			return
		}

		var rows []driverRankingRow
		if err := db.Raw("SELECT * FROM admin_driver_earnings_ranking(?, ?)",
			start.Format(dateLayout), end.Format(dateLayout)).Scan(&rows).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		response.OK(c, gin.H{
			"startDate": start.Format(dateLayout),
			"endDate":   end.Format(dateLayout),
			"ranking":   rows,
		})
	}
}

// ExportEarnings renders the driver ranking as CSV, stores it via the report
// storage and returns the file URL.
func ExportEarnings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, end, err := parseDateRange(c.Query("startDate"), c.Query("endDate"))
		if err != nil {
			response.Error(c, err)
			return
		}

		var rows []driverRankingRow
		if err := db.Raw("SELECT * FROM admin_driver_earnings_ranking(?, ?)",
			start.Format(dateLayout), end.Format(dateLayout)).Scan(&rows).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		w.Write([]string{"driver_id", "driver_name", "completed_trips", "gross_earnings", "net_earnings"})
		for _, row := range rows {
			w.Write([]string{
				fmt.Sprint(row.DriverID),
				row.DriverName,
				fmt.Sprint(row.CompletedTrips),
				fmt.Sprintf("%.2f", row.GrossEarnings),
				fmt.Sprintf("%.2f", row.NetEarnings),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			response.Error(c, apperrors.From(err))
			return
		}

		name := fmt.Sprintf("earnings_%s_%s.csv", start.Format(dateLayout), end.Format(dateLayout))
		url, err := services.UploadReport(name, buf.Bytes(), "text/csv")
		if err != nil {
			response.Error(c, apperrors.From(err))
			return
		}

		response.OK(c, gin.H{"url": url, "rows": len(rows)})
	}
}
