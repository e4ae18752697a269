// internal/api/matching.go
package api

import (
	"fmt"
	"net/http"
	"time"

	"legal-marketplace/internal/advisor"
	"legal-marketplace/internal/common/errors"
	"legal-marketplace/internal/common/metrics"
	"legal-marketplace/internal/common/validation"
	"legal-marketplace/internal/matching"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type classifyRequest struct {
	Query string `json:"query"`
}

type recommendationRequest struct {
	Description string `json:"description"`
	Location    string `json:"location"`
	CaseType    string `json:"caseType"`
	Budget      string `json:"budget"`
}

func (s *Server) classify(c *gin.Context) {
	var req classifyRequest
	if !bindValidated(c, validation.SchemaClassifyRequest, &req) {
		return
	}

	category := matching.Classify(req.Query)
	metrics.QueriesClassified.WithLabelValues(string(category)).Inc()

	resp := gin.H{"caseType": category}
	if spec, ok := matching.SpecializationFor(category); ok {
		resp["specialization"] = spec
	}
	respond(c, http.StatusOK, resp)
}

func (s *Server) match(c *gin.Context) {
	var req matching.MatchCriteria
	if !bindValidated(c, validation.SchemaMatchRequest, &req) {
		return
	}
	start := time.Now()
	category := matching.EffectiveCategory(&req)
	ctx := c.Request.Context()
	if s.deps.Observability != nil {
		var span trace.Span
		ctx, span = s.deps.Observability.StartSpan(ctx, "api.match",
			attribute.String("category", string(category)))
		defer span.End()
	}

	resp, err := s.deps.Engine.RankLawyers(ctx, req.Query, req.UserLocation, req.CaseType, req.Budget, s.deps.Directory)
	metrics.ObserveMatch(category.MetricLabel(), err, start)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, resp)
}

func (s *Server) recommendations(c *gin.Context) {
	var req recommendationRequest
	if !bindValidated(c, validation.SchemaRecommendationRequest, &req) {
		return
	}
	start := time.Now()
	resp, err := s.deps.Engine.RecommendForCase(c.Request.Context(), req.Description, req.Location, req.CaseType, req.Budget, s.deps.Directory)
	if err != nil {
		metrics.ObserveMatch(string(matching.CategoryGeneral), err, start)
		abortWithError(c, err)
		return
	}
	metrics.ObserveMatch(resp.SearchCriteria.CaseType.MetricLabel(), nil, start)
	respond(c, http.StatusOK, resp)
}

func (s *Server) chat(c *gin.Context) {
	var req advisor.AdviceRequest
	if !bindValidated(c, validation.SchemaChatRequest, &req) {
		return
	}
	if s.deps.Advisor == nil {
		abortWithError(c, errors.NewExternalServiceError("advisor", fmt.Errorf("advisor not configured")))
		return
	}

	resp, err := s.deps.Advisor.Advise(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	source := "model"
	if resp.Fallback {
		source = "fallback"
	}
	metrics.AdviceResponses.WithLabelValues(source).Inc()
	respond(c, http.StatusOK, resp)
}
