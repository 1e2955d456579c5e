// Package controllers handles HTTP request handling
package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyhub/internal/middleware"
	"github.com/yigit/studyhub/internal/pkg/apperrors"
)

// parseIDParam reads a positive integer path parameter
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("Invalid " + paramName)
	}
	return id, nil
}

// requestIDs resolves the caller and the :id path parameter, answering the
// error itself when either is missing
func requestIDs(ctx *gin.Context) (userID, id int64, ok bool) {
	userID, err := middleware.UserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	id, err = parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, 0, false
	}
	return userID, id, true
}

// requestUserID resolves the caller, answering 401 itself when absent
func requestUserID(ctx *gin.Context) (int64, bool) {
	userID, err := middleware.UserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return userID, true
}
