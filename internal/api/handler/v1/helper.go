package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillswap/skillswap-api/internal/api/middleware"
)

var errMissingUserID = errors.New("user ID missing from request context")

// getUserID pulls the authenticated user's ID set by the JWT middleware.
func getUserID(ctx *gin.Context) (uint, error) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, errMissingUserID
	}

	userID, ok := v.(uint)
	if !ok {
		return 0, errMissingUserID
	}

	return userID, nil
}

func parseUintParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

func parsePagination(ctx *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
