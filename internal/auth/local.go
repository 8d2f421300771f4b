package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// LocalAuthHandler handles username/password registration and login.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{DB: db}
}

// LocalRegisterHandler handles local registration by receiving username, password and role.
// Rejects an already-used username and passwords shorter than 8 characters.
func (h *LocalAuthHandler) LocalRegisterHandler(c *gin.Context) {
	var info struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required,oneof=talent company"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username, password, and role (only 'talent' or 'company') must be provided",
		})
		return
	}

	var user model.User
	err := h.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username already exist",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	switch info.Role {
	case "talent":
		talent := model.TalentProfile{
			User: model.User{
				Username: info.Username,
				Password: hashedPassword,
				Role:     model.RoleTalent,
			},
		}
		if err := h.DB.Create(&talent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
			})
			return
		}

		accessToken, err := generateToken(talent.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":         talent,
			"access_token": accessToken,
		})
	case "company":
		company := model.CompanyProfile{
			User: model.User{
				Username: info.Username,
				Password: hashedPassword,
				Role:     model.RoleCompany,
			},
		}
		if err := h.DB.Create(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
			})
			return
		}

		accessToken, err := generateToken(company.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
			})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":         company,
			"access_token": accessToken,
		})
	}
}

// LocalLoginHandler handles login with username and password.
func (h *LocalAuthHandler) LocalLoginHandler(c *gin.Context) {
	var info struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username and password must be provided",
		})
		return
	}

	var user model.User
	err := h.DB.Where("username = ?", info.Username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Username or password is incorrect",
		})
		return
	}

	accessToken, err := generateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	switch user.Role {
	case model.RoleTalent:
		var talent model.TalentProfile
		if err := h.DB.Preload("User").Where("user_id = ?", user.ID).First(&talent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":         talent,
			"access_token": accessToken,
		})
	case model.RoleCompany:
		var company model.CompanyProfile
		if err := h.DB.Preload("User").Where("user_id = ?", user.ID).First(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to retrieve user data: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":         company,
			"access_token": accessToken,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"user":         user,
			"access_token": accessToken,
		})
	}
}
