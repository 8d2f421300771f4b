package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/filter"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// CreateJobPostHandler handles the creation of a new job post by a company user.
// @Summary Create job post
// @Tags JobPost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobpost body model.JobPost true "Job post information"
// @Success 201 {object} model.JobPost
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobpost [post]
func (ct *Controller) CreateJobPostHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var jobPost model.JobPost
	if err := c.ShouldBindJSON(&jobPost); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	jobPost.CompanyID = user.ID
	if jobPost.Status == "" {
		jobPost.Status = model.JobStatusDraft
	}

	if err := ct.DB.Create(&jobPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job post: ", err),
		})
		return
	}

	ct.Cache.InvalidateKind(listcache.KindJobs)

	c.JSON(http.StatusCreated, jobPost)
}

// GetPosts fetches job posts with the company resolved and projects them
// through the query-string filter. Served from the list cache while fresh.
// @Summary List job posts
// @Tags JobPost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Free text search"
// @Param status query string false "Comma separated status set"
// @Param sort query string false "recent | oldest | status"
// @Param salary_min query int false "Lower salary bound"
// @Param salary_max query int false "Upper salary bound"
// @Param remote query bool false "Remote only"
// @Success 200 {array} model.JobPost
// @Router /jobpost [get]
func (ct *Controller) GetPosts(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	f := jobFilterFromQuery(c)

	key := listcache.Key{
		Kind:  listcache.KindJobs,
		Owner: user.ID.String(),
		Scope: user.Role,
	}

	rows, err := ct.Cache.Get(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		var posts []model.JobPost
		q := ct.DB.WithContext(ctx).Preload("Company")
		if user.Role == model.RoleCompany {
			// Companies manage their own posts, whatever the status.
			q = q.Where("company_id = ?", user.ID)
		} else {
			q = q.Where("status = ?", model.JobStatusActive)
		}
		err := q.Find(&posts).Error
		return posts, err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job post: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, filter.ProjectJobs(rows.([]model.JobPost), f))
}

// GetPostByID returns a single job post with the company resolved.
// @Summary Get job post by id
// @Tags JobPost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job post ID"
// @Success 200 {object} model.JobPost
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Router /jobpost/{id} [get]
func (ct *Controller) GetPostByID(c *gin.Context) {
	id := c.Param("id")

	var job model.JobPost
	if err := ct.DB.Preload("Company").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// EditJobPost allows a company user to update a job post they own.
// @Summary Edit job post
// @Tags JobPost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job post ID"
// @Param jobpost body model.JobPost true "Changed fields"
// @Success 200 {object} model.JobPost
// @Failure 403 {object} utilities.ErrorResponse "Not the owning company"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Router /jobpost/{id} [patch]
func (ct *Controller) EditJobPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPost{}
	if err := ct.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	// Verify ownership: the job post must belong to the requesting company user
	if user.Role != model.RoleAdmin && job.CompanyID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to edit this job post",
		})
		return
	}

	// Bind incoming JSON to a temporary struct to avoid overwriting ownership fields
	updated := model.JobPost{}
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	// Preserve ID and CompanyID
	updated.ID = job.ID
	updated.CompanyID = job.CompanyID

	if err := ct.DB.Model(&job).Updates(updated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job post: %s", err.Error()),
		})
		return
	}

	// Reload the job post to return the latest data
	if err := ct.DB.Where("id = ?", job.ID).First(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated job post: %s", err.Error()),
		})
		return
	}

	ct.Cache.InvalidateKind(listcache.KindJobs)

	c.JSON(http.StatusOK, job)
}

// DeleteJobPost allows a company user to delete a job post they own.
// @Summary Delete job post
// @Tags JobPost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Job post ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 403 {object} utilities.ErrorResponse "Not the owning company"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Router /jobpost/{id} [delete]
func (ct *Controller) DeleteJobPost(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.JobPost{}
	if err := ct.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if user.Role != model.RoleAdmin && job.CompanyID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to delete this job post",
		})
		return
	}

	if err := ct.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job post: %s", err.Error()),
		})
		return
	}

	ct.Cache.InvalidateKind(listcache.KindJobs)
	ct.Cache.InvalidateKind(listcache.KindApplications)

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job post deleted"})
}

func jobFilterFromQuery(c *gin.Context) filter.JobFilter {
	f := filter.DefaultJobFilter()
	f.Search = c.Query("search")
	if statuses := c.Query("status"); statuses != "" {
		f.Statuses = strings.Split(statuses, ",")
	}
	if sortBy := c.Query("sort"); sortBy != "" {
		f.SortBy = sortBy
	}
	if raw := c.Query("salary_min"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.SalaryMin = v
		}
	}
	if raw := c.Query("salary_max"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.SalaryMax = v
		}
	}
	if raw := c.Query("remote"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			f.RemoteOnly = &v
		}
	}
	return f
}

// parseUUIDParam is shared by handlers taking an id path parameter.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
