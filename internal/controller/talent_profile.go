package controller

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/filter"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// GetMyTalentProfile returns the profile of the logged-in talent.
// @Summary Get own talent profile
// @Tags Talent
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.TalentProfile
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /talent/myprofile [get]
func (ct *Controller) GetMyTalentProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var talent model.TalentProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID).First(&talent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve talent profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, talent)
}

// EditTalentProfile merges non-empty fields from the request into the
// logged-in talent's profile.
// @Summary Edit own talent profile
// @Tags Talent
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param profile body model.EditableTalentInfo true "Changed fields"
// @Success 200 {object} model.TalentProfile
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Router /talent/profile [patch]
func (ct *Controller) EditTalentProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var talent model.TalentProfile
	if err := ct.DB.Preload("User").Where("user_id = ?", user.ID).First(&talent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve talent profile: %s", err.Error()),
		})
		return
	}

	var info model.EditableTalentInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&talent.EditableTalentInfo, &info)

	if err := ct.DB.Model(&model.TalentProfile{}).Where("user_id = ?", user.ID).
		Updates(talent.EditableTalentInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update talent profile: %s", err.Error()),
		})
		return
	}

	ct.Cache.InvalidateKind(listcache.KindTalents)

	c.JSON(http.StatusOK, talent)
}

// GetTalents lists talent profiles for company users, projected through the
// query-string filter and served from the list cache while fresh.
// @Summary List talent profiles
// @Description Only company user can access this endpoint
// @Tags Talent
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Free text search"
// @Param skills query string false "Comma separated skills, all required"
// @Success 200 {array} model.TalentProfile
// @Router /talent [get]
func (ct *Controller) GetTalents(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	f := filter.DefaultTalentFilter()
	f.Search = c.Query("search")
	if skills := c.Query("skills"); skills != "" {
		f.Skills = strings.Split(skills, ",")
	}

	key := listcache.Key{
		Kind:  listcache.KindTalents,
		Owner: user.ID.String(),
		Scope: user.Role,
	}

	rows, err := ct.Cache.Get(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		var talents []model.TalentProfile
		err := ct.DB.WithContext(ctx).Preload("User").Find(&talents).Error
		return talents, err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch talents: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, filter.ProjectTalents(rows.([]model.TalentProfile), f))
}
