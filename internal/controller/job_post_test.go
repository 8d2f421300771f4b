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
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/model"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/testutil"
)

func newJobPostRouter() *gin.Engine {
	ct := NewController(testDB, nil)
	r := gin.Default()
	r.GET("/jobpost", middleware.RequireAuth(testDB), ct.GetPosts)
	r.GET("/jobpost/:id", middleware.RequireAuth(testDB), ct.GetPostByID)
	r.POST("/jobpost", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCompany), ct.CreateJobPostHandler)
	r.PATCH("/jobpost/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin, model.RoleCompany), ct.EditJobPost)
	return r
}

func TestCreateJobPostDefaultsToDraft(t *testing.T) {
	companyToken, err := auth.GetAccessToken(t, testDB, database.TestUserCompany1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newJobPostRouter()

	body := gin.H{"title": "Draft By Default", "type": "Full-time"}
	rec, resp := testutil.MakeJSONRequest(body, companyToken, r, "/jobpost", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, model.JobStatusDraft, resp["status"])
	assert.Equal(t, database.TestUserCompany1.ID.String(), resp["company_id"])
}

func TestGetPostsTalentSeesOnlyActive(t *testing.T) {
	companyToken, err := auth.GetAccessToken(t, testDB, database.TestUserCompany1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	talentToken, err := auth.GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newJobPostRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Hidden Draft Role"}, companyToken, r, "/jobpost", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	draftID := resp["id"].(string)

	req, _ := http.NewRequest(http.MethodGet, "/jobpost", nil)
	req.Header.Set("Authorization", "Bearer "+talentToken)
	talentRec := performRequest(r, req)
	assert.Equal(t, http.StatusOK, talentRec.Code)
	assert.NotContains(t, talentRec.Body.String(), draftID)

	// The owning company sees its drafts.
	req, _ = http.NewRequest(http.MethodGet, "/jobpost", nil)
	req.Header.Set("Authorization", "Bearer "+companyToken)
	companyRec := performRequest(r, req)
	assert.Equal(t, http.StatusOK, companyRec.Code)
	assert.Contains(t, companyRec.Body.String(), draftID)
}

func TestGetPostsSearchFilter(t *testing.T) {
	talentToken, err := auth.GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newJobPostRouter()

	req, _ := http.NewRequest(http.MethodGet, "/jobpost?search=backend", nil)
	req.Header.Set("Authorization", "Bearer "+talentToken)
	rec := performRequest(r, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
	assert.NotContains(t, rec.Body.String(), "Data Analyst")
}

func TestEditJobPostOwnershipEnforced(t *testing.T) {
	companyToken, err := auth.GetAccessToken(t, testDB, database.TestUserCompany1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestUserCompany2.Username, database.TestSeedPassword)
	require.NoError(t, err)

	r := newJobPostRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{"title": "Ownership Check"}, companyToken, r, "/jobpost", http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := resp["id"].(string)

	rec, _ = testutil.MakeJSONRequest(gin.H{"title": "Hijacked"}, otherToken, r, "/jobpost/"+postID, http.MethodPatch)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp = testutil.MakeJSONRequest(gin.H{"title": "Renamed"}, companyToken, r, "/jobpost/"+postID, http.MethodPatch)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", resp["title"])
}
