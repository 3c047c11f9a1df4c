package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/models"
)

type resource interface {
	models.Account | models.Allocation | models.Category | models.Goal | models.MatchRule | models.Transaction
}

// fromURI loads the resource with the ID from the ":id" path parameter.
func fromURI[R resource](c *gin.Context) (R, error) {
	var r R

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return r, err
	}

	err = models.DB.First(&r, uri.ID.UUID).Error
	return r, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R resource](c *gin.Context, _ R, options gin.HandlerFunc) {
	_, err := fromURI[R](c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}
