// Package auth holds ownership rules shared by the application services
package auth

import (
	"fmt"

	"github.com/yigit/studyhub/internal/pkg/apperrors"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

// EnsureOwner returns apperrors.ErrPermissionDenied unless requesterID owns the resource.
// Records of other users are refused, never filtered out.
func EnsureOwner(resource string, resourceID, ownerID, requesterID int64) error {
	if ownerID == requesterID {
		return nil
	}

	logger.Warn().
		Str("resource", resource).
		Int64("resourceID", resourceID).
		Int64("ownerID", ownerID).
		Int64("requesterID", requesterID).
		Msg("Ownership check failed")

	return apperrors.NewForbiddenError(fmt.Sprintf("Not authorized to access this %s", resource))
}
