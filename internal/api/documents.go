// internal/api/documents.go
package api

import (
	"net/http"

	"legal-marketplace/internal/common/validation"
	"legal-marketplace/internal/documents"

	"github.com/gin-gonic/gin"
)

type analyzeRequest struct {
	Text     string `json:"text"`
	FileName string `json:"fileName"`
}

func (s *Server) analyzeDocument(c *gin.Context) {
	var req analyzeRequest
	if !bindValidated(c, validation.SchemaDocumentAnalyze, &req) {
		return
	}

	upload := documents.Upload{Name: req.FileName, Data: []byte(req.Text)}
	if upload.Name == "" {
		upload.Name = "document.txt"
		upload.ContentType = "text/plain"
	}

	processed, err := documents.Process(upload)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, processed)
}
