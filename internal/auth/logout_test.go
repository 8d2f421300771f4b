package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/database"
)

// logoutContext builds a test context the way the auth middleware would hand
// it to the handler: bearer header set, parsed claims in the context.
func logoutContext(t *testing.T, accessToken string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	req, err := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	c.Request = req

	token, err := ValidatedToken(accessToken)
	require.NoError(t, err)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok)
	c.Set("claims", claims)

	return c, rec
}

func TestLogoutRevokesToken(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	bl := NewMemoryBlacklist()
	handler := NewLogoutHandler(bl)

	c, rec := logoutContext(t, accessToken)
	handler.Logout(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Successfully logged out", resp["message"])

	revoked, err := bl.IsRevoked(accessToken)
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogoutWithoutAuthorizationHeader(t *testing.T) {
	handler := NewLogoutHandler(NewMemoryBlacklist())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	require.NoError(t, err)
	c.Request = req

	handler.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authorization header")
}

func TestLogoutWithoutClaims(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	handler := NewLogoutHandler(NewMemoryBlacklist())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	req, err := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	c.Request = req

	handler.Logout(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token claims")
}

type failingBlacklist struct{}

func (failingBlacklist) IsRevoked(string) (bool, error) { return false, nil }
func (failingBlacklist) Revoke(string, time.Time) error {
	return fmt.Errorf("store unavailable")
}

func TestLogoutBlacklistFailure(t *testing.T) {
	accessToken, err := GetAccessToken(t, testDB, database.TestUserTalent1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	handler := NewLogoutHandler(failingBlacklist{})

	c, rec := logoutContext(t, accessToken)
	handler.Logout(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to logout")
}
