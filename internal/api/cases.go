// internal/api/cases.go
package api

import (
	"net/http"

	"legal-marketplace/internal/cases"
	"legal-marketplace/internal/common/validation"

	"github.com/gin-gonic/gin"
)

func (s *Server) createCase(c *gin.Context) {
	var req cases.CreateRequest
	if !bindValidated(c, validation.SchemaCaseCreate, &req) {
		return
	}

	created, err := s.deps.Cases.Create(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, created)
}

func (s *Server) getCase(c *gin.Context) {
	found, err := s.deps.Cases.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, found)
}

func (s *Server) caseAction(c *gin.Context) {
	var req cases.ActionRequest
	if !bindValidated(c, validation.SchemaCaseAction, &req) {
		return
	}

	result, err := s.deps.Cases.Dispatch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, result)
}

func (s *Server) caseReport(c *gin.Context) {
	report, err := s.deps.Cases.GenerateReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, report)
}
