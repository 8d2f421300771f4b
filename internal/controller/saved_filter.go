package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/filter"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

var filterKinds = []string{filter.KindApplications, filter.KindJobs, filter.KindTalents}

// GetSavedFilter returns the saved filter for a list kind, or the defaults
// when the user has never saved one.
// @Summary Get saved filter for a list
// @Tags Filter
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param kind path string true "List kind" Enums(applications, jobs, talents)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utilities.ErrorResponse "Unknown list kind"
// @Router /filters/{kind} [get]
func (ct *Controller) GetSavedFilter(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	kind := c.Param("kind")
	if !utilities.Contains(filterKinds, kind) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Unknown list kind: " + kind})
		return
	}

	var payload interface{}
	switch kind {
	case filter.KindApplications:
		f := filter.DefaultApplicationFilter()
		if _, err := filter.Load(ct.DB.DB, user.ID, kind, &f); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to load filter: " + err.Error()})
			return
		}
		payload = f
	case filter.KindJobs:
		f := filter.DefaultJobFilter()
		if _, err := filter.Load(ct.DB.DB, user.ID, kind, &f); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to load filter: " + err.Error()})
			return
		}
		payload = f
	case filter.KindTalents:
		f := filter.DefaultTalentFilter()
		if _, err := filter.Load(ct.DB.DB, user.ID, kind, &f); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to load filter: " + err.Error()})
			return
		}
		payload = f
	}

	c.JSON(http.StatusOK, gin.H{"kind": kind, "filter": payload})
}

// PutSavedFilter stores the posted filter for a list kind so it survives
// across sessions. The body must match the filter shape for that kind.
// @Summary Save filter for a list
// @Tags Filter
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param kind path string true "List kind" Enums(applications, jobs, talents)
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid filter payload"
// @Router /filters/{kind} [put]
func (ct *Controller) PutSavedFilter(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	kind := c.Param("kind")
	if !utilities.Contains(filterKinds, kind) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Unknown list kind: " + kind})
		return
	}

	var payload interface{}
	switch kind {
	case filter.KindApplications:
		var f filter.ApplicationFilter
		if err := c.ShouldBindJSON(&f); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid filter payload: " + err.Error()})
			return
		}
		payload = f
	case filter.KindJobs:
		var f filter.JobFilter
		if err := c.ShouldBindJSON(&f); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid filter payload: " + err.Error()})
			return
		}
		payload = f
	case filter.KindTalents:
		var f filter.TalentFilter
		if err := c.ShouldBindJSON(&f); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid filter payload: " + err.Error()})
			return
		}
		payload = f
	}

	if err := filter.Save(ct.DB.DB, user.ID, kind, payload); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to save filter: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Filter saved"})
}
