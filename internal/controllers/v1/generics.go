package v1

import (
	"github.com/cashfolio/backend/internal/httputil"
	"github.com/cashfolio/backend/internal/identity"
	"github.com/cashfolio/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ownedResource covers all database resources that belong to a user.
type ownedResource interface {
	models.Account | models.Category | models.Transaction | models.CashFlow | models.Budget

	Owner() uuid.UUID
}

// getResource fetches the resource referenced by the ":id" URI parameter and
// verifies that the authenticated user owns it.
func getResource[R ownedResource](c *gin.Context) (R, error) {
	var resource R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	err = models.DB.First(&resource, uri.ID.UUID).Error
	if err != nil {
		return resource, err
	}

	userID, _ := identity.UserID(c)
	if resource.Owner() != userID {
		return resource, models.ErrNotOwner
	}

	return resource, nil
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource.
func resourceOptionsDetail[R ownedResource](c *gin.Context) {
	_, err := getResource[R](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}
