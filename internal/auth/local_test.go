package auth

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func localRouter() *gin.Engine {
	r := gin.Default()
	h := NewLocalAuthHandler(testDB)
	r.POST("/auth/register", h.LocalRegisterHandler)
	r.POST("/auth/login", h.LocalLoginHandler)
	return r
}

func TestLocalRegisterTalent(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": "new_talent_reg",
		"password": "Password123!",
		"role":     "talent",
	}
	rec, resp := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, resp["access_token"])
}

func TestLocalRegisterRejectsDuplicateUsername(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": database.TestUserTalent1.Username,
		"password": "Password123!",
		"role":     "talent",
	}
	rec, resp := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "already exist")
}

func TestLocalRegisterRejectsShortPassword(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": "short_pwd_user",
		"password": "1234567",
		"role":     "company",
	}
	rec, _ := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocalRegisterRejectsUnknownRole(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": "bad_role_user",
		"password": "Password123!",
		"role":     "admin",
	}
	rec, _ := testutil.MakeJSONRequest(body, "", r, "/auth/register", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLocalLoginSuccess(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": database.TestUserTalent1.Username,
		"password": database.TestSeedPassword,
	}
	rec, resp := testutil.MakeJSONRequest(body, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp["access_token"])
	assert.NotNil(t, resp["user"])
}

func TestLocalLoginWrongPassword(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": database.TestUserTalent1.Username,
		"password": "definitely-wrong",
	}
	rec, _ := testutil.MakeJSONRequest(body, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLocalLoginUnknownUser(t *testing.T) {
	r := localRouter()

	body := gin.H{
		"username": "no_such_user",
		"password": "whatever12",
	}
	rec, _ := testutil.MakeJSONRequest(body, "", r, "/auth/login", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAccessTokenHelper(t *testing.T) {
	token, err := GetAccessToken(t, testDB, database.TestUserCompany1.Username, database.TestSeedPassword)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := ValidatedToken(token)
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok)
	assert.Equal(t, JwtIssuer, claims.Issuer)
}
