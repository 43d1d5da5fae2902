package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/luxride/admin-backend/internal/middleware"
	"github.com/luxride/admin-backend/internal/models"
	"github.com/luxride/admin-backend/pkg/apperrors"
	"github.com/luxride/admin-backend/pkg/response"
	"github.com/luxride/admin-backend/pkg/utils"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and issues a session token.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, apperrors.NewValidation(err.Error()))
			return
		}

		var admin models.AdminUser
		if result := db.Where("email = ?", input.Email).First(&admin); result.Error != nil {
			response.Error(c, apperrors.NewUnauthorized("Invalid credentials"))
			return
		}

		if err := admin.CheckPassword(input.Password); err != nil {
			response.Error(c, apperrors.NewUnauthorized("Invalid credentials"))
			return
		}

		token, err := utils.GenerateToken(&admin)
		if err != nil {
			response.Error(c, apperrors.From(err))
			return
		}

		response.OK(c, gin.H{
			"token": token,
			"admin": gin.H{
				"id":    admin.ID,
				"email": admin.Email,
				"name":  admin.Name,
				"role":  admin.Role,
			},
		})
	}
}

// Me returns the authenticated admin's profile.
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := middleware.GetSession(c)

		var admin models.AdminUser
		if err := db.First(&admin, session.AdminID).Error; err != nil {
			response.Error(c, apperrors.NewNotFound("Admin not found"))
			return
		}

		response.OK(c, gin.H{
			"id":    admin.ID,
			"email": admin.Email,
			"name":  admin.Name,
			"role":  admin.Role,
		})
	}
}
