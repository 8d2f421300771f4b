package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/filter"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/workflow"
)

// ApplicationRequest is the body of a create-application call.
type ApplicationRequest struct {
	JobID       uuid.UUID `json:"job_id" binding:"required"`
	CoverLetter string    `json:"cover_letter"`
	ResumeURL   string    `json:"resume_url"`
}

// TransitionRequest is the body of a status update call.
type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationHandler handles the creation of a new job application by a talent.
// @Summary Create job application
// @Description Only talent user can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body ApplicationRequest true "Application information"
// @Success 201 {object} model.Application "Successfully apply to job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, already applied"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [post]
func (ct *Controller) ApplicationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	// The referenced job post must exist and accept applications.
	var job model.JobPost
	if err := ct.DB.Where("id = ?", req.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}
	if job.Status != model.JobStatusActive {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Job post is %s and not accepting applications", job.Status),
		})
		return
	}

	app, err := ct.Workflow.Apply(c.Request.Context(), user.ID, req.JobID, req.CoverLetter, req.ResumeURL)
	if err != nil {
		if errors.Is(err, workflow.ErrDuplicateApplication) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "You have already applied to this job post",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", workflow.FriendlyMessage(err)),
		})
		return
	}

	c.JSON(http.StatusCreated, app)
}

// GetApplications lists the applications visible to the requesting user:
// a talent sees their own, a company sees those targeting its job posts.
// Results come from the list cache while fresh and are projected through the
// query-string filter.
// @Summary List applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Free text search"
// @Param status query string false "Comma separated status set"
// @Param sort query string false "recent | oldest | status"
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [get]
func (ct *Controller) GetApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	f := applicationFilterFromQuery(c)

	key := listcache.Key{
		Kind:  listcache.KindApplications,
		Owner: user.ID.String(),
		Scope: user.Role,
	}

	rows, err := ct.Cache.Get(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		var apps []model.Application
		q := ct.DB.WithContext(ctx).
			Preload("Job").
			Preload("Job.Company").
			Preload("Talent")
		if user.Role == model.RoleCompany {
			q = q.Where("job_id IN (?)",
				ct.DB.Model(&model.JobPost{}).Select("id").Where("company_id = ?", user.ID))
		} else {
			q = q.Where("talent_id = ?", user.ID)
		}
		err := q.Find(&apps).Error
		return apps, err
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, filter.ProjectApplications(rows.([]model.Application), f))
}

// UpdateApplicationStatus moves an application to the requested status on
// behalf of the acting company representative.
// @Summary Update application status
// @Description Only the company owning the referenced job post may move the application forward
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Param transition body TransitionRequest true "Target status"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Illegal transition"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 409 {object} utilities.ErrorResponse "Concurrent update detected"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id}/status [patch]
func (ct *Controller) UpdateApplicationStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	actor := workflow.Actor{ID: user.ID, Role: user.Role}
	app, err := ct.Workflow.RequestTransition(c.Request.Context(), appID, req.Status, actor)
	if err != nil {
		ct.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// WithdrawApplication pulls an application back on behalf of the applying talent.
// @Summary Withdraw application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Application can no longer be withdrawn"
// @Router /application/{id}/withdraw [post]
func (ct *Controller) WithdrawApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	actor := workflow.Actor{ID: user.ID, Role: user.Role}
	app, err := ct.Workflow.Withdraw(c.Request.Context(), appID, actor)
	if err != nil {
		ct.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// DeleteApplication removes an application entirely. Not part of the status
// workflow; restricted to the applying talent, the owning company, or an admin.
// @Summary Delete application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "Application ID"
// @Success 200 {object} utilities.MessageResponse
// @Router /application/{id} [delete]
func (ct *Controller) DeleteApplication(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	appID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application id"})
		return
	}

	actor := workflow.Actor{ID: user.ID, Role: user.Role}
	if err := ct.Workflow.Delete(c.Request.Context(), appID, actor); err != nil {
		ct.respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application deleted"})
}

func (ct *Controller) respondWorkflowError(c *gin.Context, err error) {
	var gwErr *workflow.GatewayError
	switch {
	case errors.Is(err, workflow.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, workflow.ErrStaleReadConflict):
		c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: err.Error()})
	case errors.As(err, &gwErr) && errors.Is(gwErr.Err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: workflow.FriendlyMessage(err),
		})
	}
}

func applicationFilterFromQuery(c *gin.Context) filter.ApplicationFilter {
	f := filter.DefaultApplicationFilter()
	f.Search = c.Query("search")
	if statuses := c.Query("status"); statuses != "" {
		f.Statuses = strings.Split(statuses, ",")
	}
	if sortBy := c.Query("sort"); sortBy != "" {
		f.SortBy = sortBy
	}
	return f
}
