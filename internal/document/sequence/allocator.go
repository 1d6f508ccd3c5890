// Package sequence allocates year-scoped, gap-free document numbers.
//
// Numbers are derived from the store: the allocator reads the current
// maximum for a (type, year) namespace, increments, and commits the
// document under the candidate number. The unique index on
// document_number is the arbiter under concurrency: a losing writer gets
// a duplicate-key failure and retries with a fresh read. A number is
// therefore never visible without its committed row.
package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/smallbiznis/scribe/internal/document/domain"
	obsmetrics "github.com/smallbiznis/scribe/internal/observability/metrics"
	"go.uber.org/zap"
)

// maxAttempts bounds retries under sustained contention. Gaps from failed
// attempts are acceptable; duplicates never are.
const maxAttempts = 3

// Prefix returns the numbering namespace prefix for a type and year.
func Prefix(docType domain.DocumentType, year int) (string, error) {
	switch docType {
	case domain.TypeInvoice:
		return fmt.Sprintf("%d-", year), nil
	case domain.TypeQuote:
		return fmt.Sprintf("DEV-%d-", year), nil
	case domain.TypeMileage:
		return fmt.Sprintf("KM-%d-", year), nil
	case domain.TypeRentReceipt:
		return fmt.Sprintf("QUIT-%d-", year), nil
	case domain.TypeRentalCharges:
		return fmt.Sprintf("REGUL-%d-", year), nil
	default:
		return "", fmt.Errorf("unknown document type %q", docType)
	}
}

// Format builds a document number. The sequence is zero-padded to four
// digits but widens past 9999 instead of wrapping.
func Format(docType domain.DocumentType, year, seq int) (string, error) {
	prefix, err := Prefix(docType, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// parseSeq extracts the trailing sequence field of an existing number.
func parseSeq(number string) (int, error) {
	idx := strings.LastIndex(number, "-")
	if idx < 0 || idx == len(number)-1 {
		return 0, fmt.Errorf("malformed document number %q", number)
	}
	seq, err := strconv.Atoi(number[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed document number %q", number)
	}
	return seq, nil
}

// BuildFunc produces the full persisted record for a candidate number.
// It is called once per attempt so the serialized model always embeds the
// number it commits under.
type BuildFunc func(number string) (*domain.Document, error)

type Allocator struct {
	repo    domain.Repository
	log     *zap.Logger
	metrics *obsmetrics.Metrics
}

func New(repo domain.Repository, log *zap.Logger, metrics *obsmetrics.Metrics) *Allocator {
	return &Allocator{
		repo:    repo,
		log:     log.Named("document.sequence"),
		metrics: metrics,
	}
}

// Allocate commits a document under the next number in its (type, year)
// namespace and returns the inserted record.
//
// Failure modes: StorageUnavailable when the store cannot be read or
// written, AllocationFailure when retries are exhausted or an existing
// number cannot be parsed. It never returns a number it has not committed.
func (a *Allocator) Allocate(ctx context.Context, docType domain.DocumentType, year int, build BuildFunc) (*domain.Document, error) {
	prefix, err := Prefix(docType, year)
	if err != nil {
		return nil, domain.AllocationFailure(err)
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		max, err := a.repo.MaxNumber(ctx, docType, prefix)
		if err != nil {
			return nil, err
		}

		seq := 1
		if max != "" {
			last, err := parseSeq(max)
			if err != nil {
				return nil, domain.AllocationFailure(err)
			}
			seq = last + 1
		}
		number := fmt.Sprintf("%s%04d", prefix, seq)

		doc, err := build(number)
		if err != nil {
			return nil, err
		}
		doc.DocumentType = docType
		doc.DocumentNumber = number

		err = a.repo.Insert(ctx, doc)
		if err == nil {
			return doc, nil
		}
		if domain.KindOf(err) == domain.KindDuplicateNumber {
			a.metrics.AllocationRetried(string(docType))
			a.log.Warn("document number collision, retrying",
				zap.String("number", number),
				zap.Int("attempt", attempt),
			)
			continue
		}
		return nil, err
	}

	return nil, domain.AllocationFailure(
		fmt.Errorf("number allocation for %s %s still colliding after %d attempts", docType, prefix, maxAttempts))
}
