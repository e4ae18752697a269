// internal/api/respond.go
package api

import (
	"encoding/json"
	"fmt"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/validation"

	"github.com/gin-gonic/gin"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// bindValidated checks the raw body against a named schema and decodes it
// into dst. It writes the error response itself and reports false on failure.
func bindValidated(c *gin.Context, schema string, dst interface{}) bool {
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, errors.NewValidationError(fmt.Sprintf("read body: %v", err)))
		return false
	}

	result, err := validation.ValidateJSON(schema, body)
	if err != nil {
		abortWithError(c, errors.NewInternalError(err))
		return false
	}
	if err := result.Err(); err != nil {
		abortWithError(c, err)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		abortWithError(c, errors.NewValidationError(fmt.Sprintf("decode body: %v", err)))
		return false
	}
	return true
}
