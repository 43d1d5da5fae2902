package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/internal/services"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type autoDispatchFlag struct {
	Enabled bool `json:"enabled"`
}

// GetAutoDispatch returns the 24/7 auto-dispatch flag, served from the Redis
// cache when warm.
func GetAutoDispatch(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if cached, err := services.GetCachedSetting(ctx, models.SettingKeyAutoDispatch); err == nil {
			var flag autoDispatchFlag
			if err := json.Unmarshal([]byte(cached), &flag); err == nil {
				response.OK(c, gin.H{"enabled": flag.Enabled})
				return
			}
		}

		var setting models.Setting
		if err := db.Where("key = ?", models.SettingKeyAutoDispatch).First(&setting).Error; err != nil {
			response.Error(c, apperrors.NewDatabase(err))
			return
		}

		var flag autoDispatchFlag
		if err := json.Unmarshal([]byte(setting.Value), &flag); err != nil {
			response.Error(c, apperrors.From(err))
			return
		}

		if err := services.SetCachedSetting(ctx, models.SettingKeyAutoDispatch, setting.Value); err != nil {
			logger.Warn("failed to cache setting", zap.String("key", setting.Key), zap.Error(err))
		}

		response.OK(c, gin.H{"enabled": flag.Enabled})
	}
}

// UpdateAutoDispatch writes the 24/7 auto-dispatch flag and invalidates the
// cache.
func UpdateAutoDispatch(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Enabled *bool `json:"enabled" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, apperrors.NewValidation("enabled must be a boolean"))
			return
		}

		value, err := json.Marshal(autoDispatchFlag{Enabled: *input.Enabled})
		if err != nil {
			response.Error(c, apperrors.From(err))
			return
		}

		result := db.Model(&models.Setting{}).
			Where("key = ?", models.SettingKeyAutoDispatch).
			Update("value", string(value))
		if result.Error != nil {
			response.Error(c, apperrors.NewDatabase(result.Error))
			return
		}
		if result.RowsAffected == 0 {
			setting := models.Setting{Key: models.SettingKeyAutoDispatch, Value: string(value)}
			if err := db.Create(&setting).Error; err != nil {
				response.Error(c, apperrors.NewDatabase(err))
				return
			}
		}

		if err := services.InvalidateSetting(c.Request.Context(), models.SettingKeyAutoDispatch); err != nil {
			logger.Warn("failed to invalidate setting cache", zap.Error(err))
		}

		response.OK(c, gin.H{"enabled": *input.Enabled})
	}
}
