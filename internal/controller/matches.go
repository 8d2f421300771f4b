package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/listcache"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/matching"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// MatchesResponse carries match rows plus the weighting the matching service
// applies, echoed for display.
type MatchesResponse struct {
	Matches []model.Match      `json:"matches"`
	Weights map[string]float64 `json:"weights"`
}

// GetMyMatches returns job matches for the logged-in talent. Fresh results
// come from the matching service; on any transport failure previously stored
// rows are served instead. Served from the list cache while fresh.
// @Summary Get job matches for talent
// @Description Only talent user can access this endpoint
// @Tags Matching
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param limit query int false "Maximum matches to return" default(20)
// @Success 200 {object} MatchesResponse
// @Failure 500 {object} utilities.ErrorResponse "No fresh or stored matches available"
// @Router /matches [get]
func (ct *Controller) GetMyMatches(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}

	key := listcache.Key{
		Kind:  listcache.KindMatches,
		Owner: user.ID.String(),
		Scope: strconv.Itoa(limit),
	}

	rows, err := ct.Cache.Get(c.Request.Context(), key, func(ctx context.Context) (interface{}, error) {
		return ct.Matcher.TalentJobMatches(ctx, user.ID, limit)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch matches: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, MatchesResponse{
		Matches: rows.([]model.Match),
		Weights: matching.Weights,
	})
}
