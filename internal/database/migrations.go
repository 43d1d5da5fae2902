package database

import (
	"github.com/luxride/admin-backend/internal/models"
	"gorm.io/gorm"
)

// earningsSummaryFn aggregates bookings over a date range. Kept as a stored
// procedure so the reporting queries run close to the data and the ranking
// endpoint stays a single round trip.
const earningsSummaryFn = `
CREATE OR REPLACE FUNCTION admin_earnings_summary(start_date date, end_date date)
RETURNS TABLE (
	total_bookings bigint,
	completed_bookings bigint,
	cancelled_bookings bigint,
	gross_revenue numeric,
	platform_commission numeric,
	driver_payout numeric
) AS $$
BEGIN
	RETURN QUERY
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE b.status = 'completed'),
		COUNT(*) FILTER (WHERE b.status = 'cancelled'),
		COALESCE(SUM(b.total_fare) FILTER (WHERE b.status = 'completed'), 0),
		COALESCE(SUM(b.total_fare * 0.2) FILTER (WHERE b.status = 'completed'), 0),
		COALESCE(SUM(b.total_fare * 0.8) FILTER (WHERE b.status = 'completed'), 0)
	FROM bookings b
	WHERE b.deleted_at IS NULL
	  AND b.scheduled_at::date BETWEEN start_date AND end_date;
END;
$$ LANGUAGE plpgsql STABLE;
`

const driverRankingFn = `
CREATE OR REPLACE FUNCTION admin_driver_earnings_ranking(start_date date, end_date date)
RETURNS TABLE (
	driver_id bigint,
	driver_name text,
	completed_trips bigint,
	gross_earnings numeric,
	net_earnings numeric
) AS $$
BEGIN
	RETURN QUERY
	SELECT
		d.id::bigint,
		d.name::text,
		COUNT(b.id),
		COALESCE(SUM(b.total_fare), 0),
		COALESCE(SUM(b.total_fare * 0.8), 0)
	FROM drivers d
	JOIN bookings b ON b.driver_id = d.id
	WHERE b.status = 'completed'
	  AND b.deleted_at IS NULL
	  AND b.scheduled_at::date BETWEEN start_date AND end_date
	GROUP BY d.id, d.name
	ORDER BY 4 DESC;
END;
$$ LANGUAGE plpgsql STABLE;
`

func RunMigrations(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.AdminUser{},
		&models.Customer{},
		&models.Driver{},
		&models.Booking{},
		&models.ChatMessage{},
		&models.Setting{},
		&models.DeviceToken{},
	)
	if err != nil {
		return err
	}

	if err := db.Exec(earningsSummaryFn).Error; err != nil {
		return err
	}
	if err := db.Exec(driverRankingFn).Error; err != nil {
		return err
	}

	// Seed the auto-dispatch flag so GET never sees a missing row.
	var count int64
	if err := db.Model(&models.Setting{}).Where("key = ?", models.SettingKeyAutoDispatch).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		seed := models.Setting{Key: models.SettingKeyAutoDispatch, Value: `{"enabled": false}`}
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
	}

	return nil
}
