package utilities

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractBearerToken pulls the token out of a "Bearer <token>" Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", fmt.Errorf("invalid authorization header")
	}

	return token, nil
}
