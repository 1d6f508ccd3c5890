package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/scribe/internal/clock"
	"github.com/smallbiznis/scribe/internal/document/domain"
	"github.com/smallbiznis/scribe/internal/document/sequence"
	obsmetrics "github.com/smallbiznis/scribe/internal/observability/metrics"
	"go.uber.org/zap"
)

// State is a generation phase. Transitions are strictly forward:
// Validating → Persisting → Rendering → Succeeded, with Failed reachable
// from Validating and Persisting. A rendering failure is not terminal for
// the document: the numbered row already committed.
type State string

const (
	StateValidating State = "validating"
	StatePersisting State = "persisting"
	StateRendering  State = "rendering"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Renderer produces the PDF for a committed document and returns the
// written file path.
type Renderer interface {
	Render(ctx context.Context, doc *domain.Document) (string, error)
}

// Request is one generation attempt over untrusted input.
type Request struct {
	Type   domain.DocumentType
	Form   Form
	UserID int64
}

// Result reports a successful generation. RenderErr is set when the
// document committed but its PDF could not be produced; the document
// stands, the PDF can be regenerated later.
type Result struct {
	Document  *domain.Document
	Model     any
	Number    string
	PDFPath   string
	State     State
	RenderErr error
}

// Runner drives a generation request through validation, persistence and
// rendering. Validation is side-effect free: no number is allocated and
// nothing is written until the full model has been built.
type Runner struct {
	alloc   *sequence.Allocator
	node    *snowflake.Node
	repo    domain.Repository
	clock   clock.Clock
	render  Renderer
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

func NewRunner(
	alloc *sequence.Allocator,
	node *snowflake.Node,
	repo domain.Repository,
	clk clock.Clock,
	render Renderer,
	log *zap.Logger,
	metrics *obsmetrics.Metrics,
) *Runner {
	return &Runner{
		alloc:   alloc,
		node:    node,
		repo:    repo,
		clock:   clk,
		render:  render,
		log:     log.Named("document.pipeline"),
		metrics: metrics,
	}
}

// Generate runs one request to completion.
func (r *Runner) Generate(ctx context.Context, req Request) (*Result, error) {
	today := domain.DateOf(r.clock.Now())

	// Validating
	model, year, err := buildModel(req.Type, req.Form, today)
	if err != nil {
		r.fail(req.Type, err)
		return nil, err
	}

	// Persisting: the insert under the candidate number is the atomic
	// allocation. The model is re-serialized per attempt so the stored
	// JSON always embeds the number the row committed under.
	doc, err := r.alloc.Allocate(ctx, req.Type, year, func(number string) (*domain.Document, error) {
		setNumber(model, number)
		raw, err := json.Marshal(model)
		if err != nil {
			return nil, domain.StorageUnavailable(err)
		}
		return &domain.Document{
			ID:     r.node.Generate(),
			Data:   raw,
			UserID: req.UserID,
		}, nil
	})
	if err != nil {
		r.fail(req.Type, err)
		return nil, err
	}

	result := &Result{
		Document: doc,
		Model:    model,
		Number:   doc.DocumentNumber,
		State:    StateSucceeded,
	}

	// Rendering happens after the commit and outside any transaction. A
	// failure here leaves a valid numbered document without its PDF.
	if r.render != nil {
		path, err := r.render.Render(ctx, doc)
		if err != nil {
			result.RenderErr = err
			r.log.Warn("document committed but rendering failed",
				zap.String("number", doc.DocumentNumber),
				zap.Error(err),
			)
		} else {
			result.PDFPath = path
			doc.PDFPath = path
			if err := r.repo.UpdatePDFPath(ctx, doc.ID, path); err != nil {
				result.RenderErr = err
				r.log.Warn("rendered PDF could not be recorded",
					zap.String("number", doc.DocumentNumber),
					zap.Error(err),
				)
			}
		}
	}

	r.metrics.DocumentGenerated(string(req.Type))
	r.log.Info("document generated",
		zap.String("type", string(req.Type)),
		zap.String("number", doc.DocumentNumber),
		zap.Int64("user_id", req.UserID),
	)
	return result, nil
}

func (r *Runner) fail(docType domain.DocumentType, err error) {
	kind := string(domain.KindOf(err))
	if kind == "" {
		kind = "internal"
	}
	r.metrics.DocumentFailed(string(docType), kind)
	r.log.Warn("document generation failed",
		zap.String("type", string(docType)),
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// buildModel dispatches to the per-type builder and resolves the
// numbering year: wall clock for invoices, quotes and mileage reports,
// the rental period for receipts and charge statements.
func buildModel(docType domain.DocumentType, form Form, today domain.Date) (any, int, error) {
	switch docType {
	case domain.TypeInvoice:
		inv, err := BuildInvoice(form, today)
		if err != nil {
			return nil, 0, err
		}
		return inv, today.Year(), nil
	case domain.TypeQuote:
		q, err := BuildQuote(form, today)
		if err != nil {
			return nil, 0, err
		}
		return q, today.Year(), nil
	case domain.TypeMileage:
		report, err := BuildMileageReport(form, today)
		if err != nil {
			return nil, 0, err
		}
		return report, today.Year(), nil
	case domain.TypeRentReceipt:
		receipt, err := BuildRentReceipt(form, today)
		if err != nil {
			return nil, 0, err
		}
		return receipt, receipt.PeriodYear, nil
	case domain.TypeRentalCharges:
		rc, err := BuildRentalCharges(form)
		if err != nil {
			return nil, 0, err
		}
		return rc, rc.PeriodEnd.Year(), nil
	default:
		return nil, 0, domain.InvalidFormat("document_type",
			fmt.Sprintf("type de document inconnu: %s", docType))
	}
}

func setNumber(model any, number string) {
	switch m := model.(type) {
	case *domain.Invoice:
		m.Number = number
	case *domain.Quote:
		m.Number = number
	case *domain.MileageReport:
		m.Number = number
	case *domain.RentReceipt:
		m.Number = number
	case *domain.RentalCharges:
		m.Number = number
	}
}
