// Package pdf renders committed documents with maroto.
package pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/scribe/internal/config"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"go.uber.org/zap"
)

// Renderer writes one PDF per committed document, named after the
// document number, under the configured output directory.
type Renderer struct {
	company config.CompanyConfig
	outDir  string
	log     *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Renderer {
	return &Renderer{
		company: cfg.Company,
		outDir:  cfg.DocumentsDir,
		log:     log.Named("providers.pdf"),
	}
}

func (r *Renderer) Render(ctx context.Context, doc *domain.Document) (string, error) {
	m := r.newDocument()

	switch doc.DocumentType {
	case domain.TypeInvoice:
		var inv domain.Invoice
		if err := json.Unmarshal(doc.Data, &inv); err != nil {
			return "", fmt.Errorf("decode invoice %s: %w", doc.DocumentNumber, err)
		}
		r.renderInvoice(m, &inv)
	case domain.TypeQuote:
		var q domain.Quote
		if err := json.Unmarshal(doc.Data, &q); err != nil {
			return "", fmt.Errorf("decode quote %s: %w", doc.DocumentNumber, err)
		}
		r.renderQuote(m, &q)
	case domain.TypeMileage:
		var report domain.MileageReport
		if err := json.Unmarshal(doc.Data, &report); err != nil {
			return "", fmt.Errorf("decode mileage report %s: %w", doc.DocumentNumber, err)
		}
		r.renderMileageReport(m, &report)
	case domain.TypeRentReceipt:
		var receipt domain.RentReceipt
		if err := json.Unmarshal(doc.Data, &receipt); err != nil {
			return "", fmt.Errorf("decode rent receipt %s: %w", doc.DocumentNumber, err)
		}
		r.renderRentReceipt(m, &receipt)
	case domain.TypeRentalCharges:
		var rc domain.RentalCharges
		if err := json.Unmarshal(doc.Data, &rc); err != nil {
			return "", fmt.Errorf("decode rental charges %s: %w", doc.DocumentNumber, err)
		}
		r.renderRentalCharges(m, &rc)
	default:
		return "", fmt.Errorf("no renderer for document type %q", doc.DocumentType)
	}

	rendered, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("render %s: %w", doc.DocumentNumber, err)
	}

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(r.outDir, doc.DocumentNumber+".pdf")
	if err := os.WriteFile(path, rendered.GetBytes(), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	r.log.Info("document rendered",
		zap.String("number", doc.DocumentNumber),
		zap.String("path", path),
	)
	return path, nil
}

func (r *Renderer) newDocument() core.Maroto {
	cfg := mconfig.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

// euro renders an amount in French notation, e.g. "1234,56 €".
func euro(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1) + " €"
}

// frenchDate renders a date as JJ/MM/AAAA for display.
func frenchDate(d domain.Date) string {
	return d.Format("02/01/2006")
}
