package server

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/muscleuplabs/muscleup/internal/actorcontext"
)

const operatorHeader = "X-Operator-Id"

// OperatorRequired injects the acting operator's identity from the
// session edge into the request context. Committing a sale without an
// operator is refused, so the route fails fast here.
func OperatorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := snowflake.ParseString(c.GetHeader(operatorHeader))
		if err != nil || id == 0 {
			AbortWithError(c, invalidRequestError(errors.New("a valid "+operatorHeader+" header is required")))
			return
		}
		c.Request = c.Request.WithContext(actorcontext.WithOperator(c.Request.Context(), id))
		c.Next()
	}
}

// OperatorOptional injects the operator identity when present; quotes
// work without one.
func OperatorOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(operatorHeader); raw != "" {
			if id, err := snowflake.ParseString(raw); err == nil && id != 0 {
				c.Request = c.Request.WithContext(actorcontext.WithOperator(c.Request.Context(), id))
			}
		}
		c.Next()
	}
}
