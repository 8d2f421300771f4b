package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/auth"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/middleware"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/testutil"
)

func newFilterRouter() *gin.Engine {
	ct := NewController(testDB, nil)
	r := gin.Default()
	r.GET("/filters/:kind", middleware.RequireAuth(testDB), ct.GetSavedFilter)
	r.PUT("/filters/:kind", middleware.RequireAuth(testDB), ct.PutSavedFilter)
	return r
}

func TestGetSavedFilterReturnsDefaultsWhenUnsaved(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserCompany1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newFilterRouter()

	req, _ := http.NewRequest(http.MethodGet, "/filters/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := performRequest(r, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sort_by":"recent"`)
	assert.Contains(t, rec.Body.String(), `"salary_max":500000`)
}

func TestPutSavedFilterRoundTrip(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newFilterRouter()

	body := gin.H{
		"search":     "backend",
		"statuses":   []string{"active"},
		"sort_by":    "oldest",
		"salary_min": 30000,
		"salary_max": 90000,
	}
	rec, _ := testutil.MakeJSONRequest(body, token, r, "/filters/jobs", http.MethodPut)
	require.Equal(t, http.StatusOK, rec.Code)

	req, _ := http.NewRequest(http.MethodGet, "/filters/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	getRec := performRequest(r, req)

	assert.Equal(t, http.StatusOK, getRec.Code)
	assert.Contains(t, getRec.Body.String(), `"search":"backend"`)
	assert.Contains(t, getRec.Body.String(), `"sort_by":"oldest"`)
}

func TestSavedFilterUnknownKind(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newFilterRouter()

	req, _ := http.NewRequest(http.MethodGet, "/filters/widgets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := performRequest(r, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
