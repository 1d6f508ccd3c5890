package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/scribe/internal/clock"
	"github.com/smallbiznis/scribe/internal/config"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/document/pipeline"
	"github.com/smallbiznis/scribe/internal/document/repository"
	"github.com/smallbiznis/scribe/internal/document/sequence"
	obsmetrics "github.com/smallbiznis/scribe/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingMailer struct {
	to      []string
	subject string
}

func (m *recordingMailer) Send(_ context.Context, to []string, subject, _ string) error {
	m.to = to
	m.subject = subject
	return nil
}

func newTestServer(t *testing.T) (*Server, *recordingMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Document{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	log := zap.NewNop()
	metrics := obsmetrics.NewWithRegisterer(prometheus.NewRegistry())
	repo := repository.New(gdb, log)
	alloc := sequence.New(repo, log, metrics)
	clk := clock.NewFakeClock(time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC))
	runner := pipeline.NewRunner(alloc, node, repo, clk, nil, log, metrics)

	cfg := config.Config{
		Environment: "test",
		HTTPAddr:    ":0",
		Company:     config.CompanyConfig{Name: "Scribe SARL"},
	}

	mailer := &recordingMailer{}
	s := NewServer(ServerParams{
		Engine: NewEngine(cfg),
		Cfg:    cfg,
		Runner: runner,
		Repo:   repo,
		Mailer: mailer,
		Log:    log,
	})
	return s, mailer
}

func doRequest(s *Server, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func invoiceBody() map[string]any {
	return map[string]any{
		"client_name":    "ACME SARL",
		"client_address": "1 rue de la Paix, 75002 Paris",
		"items": []map[string]any{
			{"description": "Prestation de conseil", "quantity": 3, "unit_price": "33.33"},
		},
	}
}

func TestCreateInvoice(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/v1/documents/invoice", invoiceBody(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		DocumentNumber string          `json:"document_number"`
		DocumentType   string          `json:"document_type"`
		Document       json.RawMessage `json:"document"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2024-0001", resp.DocumentNumber)
	assert.Equal(t, "invoice", resp.DocumentType)

	var inv domain.Invoice
	require.NoError(t, json.Unmarshal(resp.Document, &inv))
	assert.Equal(t, "2024-0001", inv.Number)
	assert.Equal(t, "119.99", inv.TotalInclTax().StringFixed(2))
}

func TestCreateDocumentValidationError(t *testing.T) {
	s, _ := newTestServer(t)

	body := invoiceBody()
	delete(body, "client_name")

	w := doRequest(s, http.MethodPost, "/v1/documents/invoice", body, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "client_name", resp.Error.Field)
	assert.Equal(t, "le nom du client est requis", resp.Error.Message)
}

func TestCreateDocumentUnknownType(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/v1/documents/carnet", invoiceBody(), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAndCountDocuments(t *testing.T) {
	s, _ := newTestServer(t)
	header := map[string]string{"X-User-ID": "42"}

	require.Equal(t, http.StatusCreated,
		doRequest(s, http.MethodPost, "/v1/documents/invoice", invoiceBody(), header).Code)
	require.Equal(t, http.StatusCreated,
		doRequest(s, http.MethodPost, "/v1/documents/quote", invoiceBody(), header).Code)

	w := doRequest(s, http.MethodGet, "/v1/documents", nil, header)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Documents []documentResponse `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Documents, 2)

	w = doRequest(s, http.MethodGet, "/v1/documents?type=quote", nil, header)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "DEV-2024-0001", list.Documents[0].DocumentNumber)

	// Another user sees nothing.
	w = doRequest(s, http.MethodGet, "/v1/documents", nil, map[string]string{"X-User-ID": "7"})
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.Documents)

	w = doRequest(s, http.MethodGet, "/v1/documents/counts", nil, header)
	require.Equal(t, http.StatusOK, w.Code)
	var counts struct {
		Counts map[string]int64 `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &counts))
	assert.Equal(t, int64(1), counts.Counts["invoice"])
	assert.Equal(t, int64(1), counts.Counts["quote"])
}

func TestGetDocumentByNumber(t *testing.T) {
	s, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doRequest(s, http.MethodPost, "/v1/documents/invoice", invoiceBody(), nil).Code)

	w := doRequest(s, http.MethodGet, "/v1/documents/by-number/2024-0001", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(s, http.MethodGet, "/v1/documents/by-number/2024-9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSendDocument(t *testing.T) {
	s, mailer := newTestServer(t)

	require.Equal(t, http.StatusCreated,
		doRequest(s, http.MethodPost, "/v1/documents/invoice", invoiceBody(), nil).Code)

	w := doRequest(s, http.MethodPost, "/v1/documents/send", map[string]any{
		"number": "2024-0001",
		"to":     []string{"client@example.fr"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, []string{"client@example.fr"}, mailer.to)
	assert.Equal(t, "Facture 2024-0001", mailer.subject)

	w = doRequest(s, http.MethodPost, "/v1/documents/send", map[string]any{
		"number": "2024-0001",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(s, http.MethodPost, "/v1/documents/send", map[string]any{
		"number": "2024-4242",
		"to":     []string{"client@example.fr"},
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatUnavailableWithoutClassifier(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodPost, "/v1/chat", map[string]any{"message": "une facture"}, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)

	w := doRequest(s, http.MethodGet, "/healthz", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
