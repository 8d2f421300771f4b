package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// GetCompanyProfile returns the profile of the logged-in company.
// @Summary Get own company profile
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.CompanyProfile
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/myprofile [get]
func (ct *Controller) GetCompanyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var company model.CompanyProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID).First(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// GetCompanyByID returns any company profile by id.
// @Summary Get company profile by id
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param company_id path string true "Company user ID"
// @Success 200 {object} model.CompanyProfile
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Router /company/{company_id} [get]
func (ct *Controller) GetCompanyByID(c *gin.Context) {
	companyID, ok := parseUUIDParam(c, "company_id")
	if !ok {
		return
	}

	var company model.CompanyProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", companyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// EditCompanyProfile merges non-empty fields from the request into the
// logged-in company's profile.
// @Summary Edit own company profile
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body model.EditableCompanyInfo true "Changed fields"
// @Success 200 {object} model.CompanyProfile
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Router /company/profile [patch]
func (ct *Controller) EditCompanyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var company model.CompanyProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID).First(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company profile: %s", err.Error()),
		})
		return
	}

	var info model.EditableCompanyInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &info)

	if err := ct.DB.Model(&model.CompanyProfile{}).Where("user_id = ?", user.ID).
		Updates(company.EditableCompanyInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update company profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}
