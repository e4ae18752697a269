// internal/api/lawyers.go
package api

import (
	"net/http"
	"time"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/validation"
	"legal-marketplace/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) listLawyers(c *gin.Context) {
	var filter models.LawyerFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abortWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	lawyers, err := s.deps.Directory.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"lawyers": lawyers, "total": len(lawyers)})
}

func (s *Server) getLawyer(c *gin.Context) {
	lawyer, err := s.deps.Directory.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, lawyer)
}

func (s *Server) createLawyer(c *gin.Context) {
	var profile models.LawyerProfile
	if !bindValidated(c, validation.SchemaLawyerCreate, &profile) {
		return
	}
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	if err := s.deps.Directory.Create(c.Request.Context(), &profile); err != nil {
		abortWithError(c, err)
		return
	}
	s.logger.Info("lawyer registered", map[string]interface{}{"lawyerId": profile.ID})
	respond(c, http.StatusCreated, profile)
}
