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

type registerRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
}

type loginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Register creates a visitor account: the user row plus its visitor profile
// in one transaction.
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration payload: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusConflict, "an account with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.RespondServiceError(c, err, "register lookup")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondServiceError(c, err, "register hash")
		return
	}

	user := models.User{
		FullName:     strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleVisitor,
	}
	visitor := models.Visitor{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		visitor.UserID = user.ID
		return tx.Create(&visitor).Error
	})
	if err != nil {
		utils.RespondServiceError(c, err, "register create")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"user_id":    user.ID,
		"visitor_id": visitor.ID,
		"email":      user.Email,
		"full_name":  user.FullName,
	})
}

// Login checks credentials and sets the session cookie. The token is also
// returned for clients that prefer the Authorization header.
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := config.DB.Preload("Visitor").Preload("Admin").
		Where("email = ?", email).First(&user).Error
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	var visitorID, adminID uint
	if user.Visitor != nil {
		visitorID = user.Visitor.ID
	}
	if user.Admin != nil {
		adminID = user.Admin.ID
	}

	token, err := utils.GenerateSessionToken(user.ID, visitorID, adminID, user.Role, req.RememberMe)
	if err != nil {
		utils.RespondServiceError(c, err, "login token")
		return
	}

	maxAge := 2 * 60 * 60
	if req.RememberMe {
		maxAge = 30 * 24 * 60 * 60
	}
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token":      token,
		"user_id":    user.ID,
		"visitor_id": visitorID,
		"admin_id":   adminID,
		"role":       user.Role,
		"full_name":  user.FullName,
	})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "logged out"})
}
