package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"myplan-backend/config"
	"myplan-backend/middleware"
	"myplan-backend/models"
	"myplan-backend/utils"
)

// ShowProfile returns the authenticated visitor's profile with account info.
func ShowProfile(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	var visitor models.Visitor
	if err := config.DB.Preload("User").First(&visitor, visitorID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "profile not found")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"visitor_id":   visitor.ID,
		"first_name":   visitor.FirstName,
		"last_name":    visitor.LastName,
		"full_name":    visitor.FullName(),
		"phone_number": visitor.PhoneNumber,
		"bio":          visitor.Bio,
		"email":        visitor.User.Email,
		"image":        visitor.User.Image,
		"member_since": visitor.User.AddedAt,
	})
}

// UpdateProfile edits names, contact info and optionally the avatar image.
// Accepts multipart form data so the image can ride along.
func UpdateProfile(c *gin.Context) {
	visitorID := middleware.VisitorID(c)

	var visitor models.Visitor
	if err := config.DB.Preload("User").First(&visitor, visitorID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "profile not found")
		return
	}

	firstName := strings.TrimSpace(c.PostForm("first_name"))
	lastName := strings.TrimSpace(c.PostForm("last_name"))
	phone := strings.TrimSpace(c.PostForm("phone_number"))
	bio := c.PostForm("bio")
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))

	if email != "" && email != visitor.User.Email {
		var taken models.User
		err := config.DB.Where("email = ? AND id <> ?", email, visitor.UserID).
			First(&taken).Error
		if err == nil {
			utils.JSONError(c, http.StatusConflict, "this email is already in use")
			return
		} else if err != gorm.ErrRecordNotFound {
			utils.RespondServiceError(c, err, "profile email lookup")
			return
		}
	}

	var newImagePath string
	if file, err := c.FormFile("image"); err == nil {
		newImagePath, err = utils.SaveUploadedImage(file, "profiles")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	oldImage := ""
	if visitor.User.Image != nil {
		oldImage = *visitor.User.Image
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if firstName != "" {
			visitor.FirstName = firstName
		}
		if lastName != "" {
			visitor.LastName = lastName
		}
		visitor.PhoneNumber = phone
		visitor.Bio = bio
		if err := tx.Save(&visitor).Error; err != nil {
			return err
		}

		userUpdates := map[string]interface{}{
			"full_name": visitor.FullName(),
		}
		if email != "" {
			userUpdates["email"] = email
		}
		if newImagePath != "" {
			userUpdates["image"] = newImagePath
		}
		return tx.Model(&models.User{}).Where("id = ?", visitor.UserID).
			Updates(userUpdates).Error
	})
	if err != nil {
		if newImagePath != "" {
			utils.DeleteUploadedFile(newImagePath)
		}
		utils.RespondServiceError(c, err, "profile update")
		return
	}

	if newImagePath != "" && oldImage != "" {
		utils.DeleteUploadedFile(oldImage)
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "profile updated"})
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UpdatePassword verifies the current password before rehashing.
func UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "current and new password are required (min 8 chars)")
		return
	}

	userID := middleware.UserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "account not found")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondServiceError(c, err, "password hash")
		return
	}

	if err := config.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		utils.RespondServiceError(c, err, "password update")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "password updated"})
}

// DeleteProfileImage removes the avatar and clears the column.
func DeleteProfileImage(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "account not found")
		return
	}

	if user.Image != nil && *user.Image != "" {
		utils.DeleteUploadedFile(*user.Image)
	}

	if err := config.DB.Model(&user).Update("image", nil).Error; err != nil {
		utils.RespondServiceError(c, err, "profile image delete")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "profile image removed"})
}
