package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/auth"
	"github.com/sohayb-elbakali/talentbrains-pro-sub000/internal/utilities"
)

// RejectRevokedTokens blocks requests whose bearer token was revoked by a
// logout. Run it after RequireAuth so the token is already known to be valid.
func RejectRevokedTokens(bl auth.TokenBlacklist) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := utilities.ExtractBearerToken(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		revoked, err := bl.IsRevoked(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to validate token: %s", err.Error()),
			})
			return
		}

		if revoked {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, utilities.ErrorResponse{
				Error: "Token has been revoked",
			})
			return
		}

		ctx.Next()
	}
}
