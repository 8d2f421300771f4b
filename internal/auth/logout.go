package auth

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// LogoutHandler revokes the presented access token so it stops working
// before its natural expiry.
type LogoutHandler struct {
	Blacklist TokenBlacklist
}

// NewLogoutHandler creates a LogoutHandler backed by the given blacklist.
func NewLogoutHandler(bl TokenBlacklist) *LogoutHandler {
	return &LogoutHandler{Blacklist: bl}
}

// Logout blacklists the bearer token for the remainder of its lifetime.
// @Summary Log out
// @Description Revokes the presented access token
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse
// @Router /auth/logout [post]
func (h *LogoutHandler) Logout(c *gin.Context) {
	tokenString, err := utilities.ExtractBearerToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	claims, err := claimsFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.Blacklist.Revoke(tokenString, claims.ExpiresAt.Time); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Failed to logout"})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Successfully logged out"})
}

func claimsFromContext(c *gin.Context) (*jwt.RegisteredClaims, error) {
	raw, ok := c.Get("claims")
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	claims, ok := raw.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims type")
	}
	return claims, nil
}
