package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/document/pipeline"
	"github.com/smallbiznis/scribe/internal/nlu"
	"github.com/smallbiznis/scribe/internal/providers/email"
	"go.uber.org/zap"
)

type documentResponse struct {
	DocumentNumber string          `json:"document_number"`
	DocumentType   string          `json:"document_type"`
	PDFPath        string          `json:"pdf_path,omitempty"`
	Document       json.RawMessage `json:"document"`
	CreatedAt      string          `json:"created_at,omitempty"`
	Warning        string          `json:"warning,omitempty"`
}

func newDocumentResponse(doc *domain.Document) documentResponse {
	resp := documentResponse{
		DocumentNumber: doc.DocumentNumber,
		DocumentType:   string(doc.DocumentType),
		PDFPath:        doc.PDFPath,
		Document:       json.RawMessage(doc.Data),
	}
	if !doc.CreatedAt.IsZero() {
		resp.CreatedAt = doc.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// userID reads the caller identity. Authentication is out of scope here;
// the header is trusted infrastructure input.
func (s *Server) userID(c *gin.Context) int64 {
	raw := c.GetHeader("X-User-ID")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func (s *Server) CreateDocument(c *gin.Context) {
	docType := domain.DocumentType(c.Param("type"))
	if !docType.Valid() {
		AbortWithError(c, domain.InvalidFormat("document_type",
			"type de document inconnu: "+c.Param("type")))
		return
	}

	var form pipeline.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		AbortWithError(c, domain.InvalidFormat("body",
			"le corps de la requête doit être un objet JSON"))
		return
	}

	result, err := s.runner.Generate(c.Request.Context(), pipeline.Request{
		Type:   docType,
		Form:   form,
		UserID: s.userID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := newDocumentResponse(result.Document)
	if result.RenderErr != nil {
		resp.Warning = "le document est enregistré mais le PDF n'a pas pu être généré"
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListDocuments(c *gin.Context) {
	docType := domain.DocumentType(c.Query("type"))
	if docType != "" && !docType.Valid() {
		AbortWithError(c, domain.InvalidFormat("type",
			"type de document inconnu: "+c.Query("type")))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			AbortWithError(c, domain.InvalidFormat("limit", "le paramètre limit doit être un entier positif"))
			return
		}
		limit = parsed
	}

	docs, err := s.repo.ListByUser(c.Request.Context(), s.userID(c), docType, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	items := make([]documentResponse, 0, len(docs))
	for i := range docs {
		items = append(items, newDocumentResponse(&docs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"documents": items})
}

func (s *Server) CountDocuments(c *gin.Context) {
	counts, err := s.repo.CountByType(c.Request.Context(), s.userID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"counts": counts})
}

func (s *Server) GetDocument(c *gin.Context) {
	doc, err := s.repo.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: "document introuvable",
		}})
		return
	}
	c.JSON(http.StatusOK, newDocumentResponse(doc))
}

type sendRequest struct {
	Number string   `json:"number"`
	To     []string `json:"to"`
}

func (s *Server) SendDocument(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, domain.InvalidFormat("body",
			"le corps de la requête doit être un objet JSON"))
		return
	}
	if req.Number == "" {
		AbortWithError(c, domain.MissingField("number", "le numéro de document est requis"))
		return
	}
	if len(req.To) == 0 {
		AbortWithError(c, domain.MissingField("to", "au moins un destinataire est requis"))
		return
	}

	doc, err := s.repo.GetByNumber(c.Request.Context(), req.Number)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, errorResponse{Error: errorPayload{
			Type:    "not_found",
			Message: "document introuvable",
		}})
		return
	}

	subject, body, err := email.DocumentSummary(doc, s.cfg.Company.Name)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if s.mailer == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: errorPayload{
			Type:    "mail_unavailable",
			Message: "l'envoi de courriels n'est pas configuré",
		}})
		return
	}
	if err := s.mailer.Send(c.Request.Context(), req.To, subject, body); err != nil {
		s.log.Warn("document mail failed",
			zap.String("number", req.Number),
			zap.Error(err),
		)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: errorPayload{
			Type:    "mail_unavailable",
			Message: "le courriel n'a pas pu être envoyé",
		}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true, "number": req.Number})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		AbortWithError(c, domain.MissingField("message", "le message est requis"))
		return
	}
	if s.classifier == nil || !s.classifier.Enabled() {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: errorPayload{
			Type:    "nlu_unavailable",
			Message: "l'assistant conversationnel n'est pas configuré",
		}})
		return
	}

	result, err := s.classifier.Classify(c.Request.Context(), req.Message)
	if err != nil {
		s.log.Warn("nlu classification failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: errorPayload{
			Type:    "nlu_unavailable",
			Message: "l'assistant conversationnel est indisponible, veuillez réessayer",
		}})
		return
	}

	docType, ok := result.DocumentType()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"intent": nlu.IntentChat, "reply": result.Reply})
		return
	}

	generated, err := s.runner.Generate(c.Request.Context(), pipeline.Request{
		Type:   docType,
		Form:   pipeline.Form(result.Fields),
		UserID: s.userID(c),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp := newDocumentResponse(generated.Document)
	if generated.RenderErr != nil {
		resp.Warning = "le document est enregistré mais le PDF n'a pas pu être généré"
	}
	c.JSON(http.StatusCreated, gin.H{
		"intent":   result.Intent,
		"reply":    result.Reply,
		"document": resp,
	})
}
