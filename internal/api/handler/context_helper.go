package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harshavardhanyedla/AttendX/pkg/jwt"
	"github.com/Harshavardhanyedla/AttendX/pkg/response"
)

// Context keys set by middleware.JWTAuth.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// MustGetUserID extracts user_id from the gin context.
// On false a 401 has been written and the caller should return.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "unauthenticated")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthenticated, "unauthenticated")
		return "", false
	}
	return s, true
}

// MustGetClaims extracts the parsed access token claims.
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthenticated, "unauthenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, response.CodeUnauthenticated, "unauthenticated")
		return nil, false
	}
	return claims, true
}

// bindError writes the shared 400 for a failed ShouldBind, or 413 when the
// body outgrew the BodyLimit reader.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "request body too large")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request parameters", err.Error())
}
