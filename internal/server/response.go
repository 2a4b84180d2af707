package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	saledomain "github.com/muscleuplabs/muscleup/internal/sale/domain"
)

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// AbortWithError maps engine errors to HTTP statuses. The message is
// already user-presentable; presentation beyond that belongs to the
// console.
func AbortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	kind := saledomain.KindStore

	var se *saledomain.Error
	if errors.As(err, &se) {
		kind = se.Kind
		switch se.Kind {
		case saledomain.KindValidation:
			status = http.StatusBadRequest
		case saledomain.KindReconciliation:
			status = http.StatusUnprocessableEntity
		case saledomain.KindNotFound:
			status = http.StatusNotFound
		}
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"kind":    string(kind),
			"message": err.Error(),
		},
	})
}

func invalidRequestError(err error) error {
	return saledomain.NewError(saledomain.KindValidation, err)
}
