package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chlyn/COSC369-Final-Project/internal/api/middleware"
	"github.com/chlyn/COSC369-Final-Project/pkg/jwt"
	"github.com/chlyn/COSC369-Final-Project/pkg/response"
)

// resolveUserID returns the caller's user id. A bearer token wins; a userId
// sent alongside it must match. Without a token the claimed id is used, and
// a request with neither is unauthenticated.
// On false a response has already been written.
func resolveUserID(c *gin.Context, claimed string) (string, bool) {
	claimed = strings.TrimSpace(claimed)

	if v, ok := c.Get(middleware.CtxUserID); ok {
		tokenUser, _ := v.(string)
		if tokenUser == "" {
			response.Unauthorized(c, 10002, "Authentication required")
			return "", false
		}
		if claimed != "" && claimed != tokenUser {
			response.Unauthorized(c, 10002, "userId does not match the signed-in user")
			return "", false
		}
		return tokenUser, true
	}

	if claimed == "" {
		response.Unauthorized(c, 10002, "userId is required")
		return "", false
	}
	return claimed, true
}

// tokenClaims returns the verified token of the request, if any.
func tokenClaims(c *gin.Context) *jwt.Claims {
	v, ok := c.Get(middleware.CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}

// bindJSON decodes and validates the body. On false a response has already
// been written.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			return false
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Invalid request", err.Error())
		return false
	}
	return true
}

// bindQuery decodes and validates query parameters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "Invalid request", err.Error())
		return false
	}
	return true
}

// internalError hides err from the client and attaches it for the request log.
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.InternalError(c)
}
