// internal/api/consultations.go
package api

import (
	"net/http"

	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/validation"
	"legal-marketplace/internal/consultations"
	"legal-marketplace/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) bookConsultation(c *gin.Context) {
	var req consultations.BookingRequest
	if !bindValidated(c, validation.SchemaConsultationRequest, &req) {
		return
	}

	consultation, err := s.deps.Consultations.Book(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, consultation)
}

func (s *Server) listConsultations(c *gin.Context) {
	var filter models.ConsultationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		abortWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	items, err := s.deps.Consultations.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"consultations": items, "total": len(items)})
}

func (s *Server) getConsultation(c *gin.Context) {
	consultation, err := s.deps.Consultations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, consultation)
}

func (s *Server) updateConsultation(c *gin.Context) {
	var req consultations.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errors.NewValidationError(err.Error()))
		return
	}

	consultation, err := s.deps.Consultations.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, consultation)
}

// cancelConsultation is a soft delete. The client is told when a notifier is configured.
func (s *Server) cancelConsultation(c *gin.Context) {
	ctx := c.Request.Context()
	consultation, err := s.deps.Consultations.Cancel(ctx, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if s.deps.Notifier != nil {
		if err := s.deps.Notifier.ConsultationCancelled(ctx, consultation); err != nil {
			s.logger.Warn("cancellation notification failed", map[string]interface{}{
				"consultationId": consultation.ID,
				"error":          err,
			})
		}
	}
	respond(c, http.StatusOK, consultation)
}
