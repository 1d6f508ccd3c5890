package sequence

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smallbiznis/scribe/internal/document/domain"
	obsmetrics "github.com/smallbiznis/scribe/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryRepo keeps documents in a map guarded by a mutex. Uniqueness of
// document numbers is enforced the way the real store's unique index does.
type memoryRepo struct {
	mu   sync.Mutex
	docs map[string]*domain.Document

	// maxDelay lets a test widen the read-then-insert window to force
	// collisions between concurrent allocators.
	maxHook func()

	readErr   error
	insertErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: make(map[string]*domain.Document)}
}

func (r *memoryRepo) MaxNumber(_ context.Context, docType domain.DocumentType, prefix string) (string, error) {
	if r.readErr != nil {
		return "", r.readErr
	}

	r.mu.Lock()
	var max string
	for number, doc := range r.docs {
		if doc.DocumentType != docType {
			continue
		}
		if len(number) < len(prefix) || number[:len(prefix)] != prefix {
			continue
		}
		if len(number) > len(max) || (len(number) == len(max) && number > max) {
			max = number
		}
	}
	r.mu.Unlock()

	if r.maxHook != nil {
		r.maxHook()
	}
	return max, nil
}

func (r *memoryRepo) Insert(_ context.Context, doc *domain.Document) error {
	if r.insertErr != nil {
		return r.insertErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[doc.DocumentNumber]; exists {
		return domain.DuplicateNumber(doc.DocumentNumber)
	}
	r.docs[doc.DocumentNumber] = doc
	return nil
}

func (r *memoryRepo) UpdatePDFPath(context.Context, snowflake.ID, string) error {
	return nil
}

func (r *memoryRepo) GetByNumber(context.Context, string) (*domain.Document, error) {
	return nil, nil
}

func (r *memoryRepo) ListByUser(context.Context, int64, domain.DocumentType, int) ([]domain.Document, error) {
	return nil, nil
}

func (r *memoryRepo) CountByType(context.Context, int64) (map[domain.DocumentType]int64, error) {
	return nil, nil
}

func newTestAllocator(repo domain.Repository) *Allocator {
	metrics := obsmetrics.NewWithRegisterer(prometheus.NewRegistry())
	return New(repo, zap.NewNop(), metrics)
}

func emptyDoc(number string) (*domain.Document, error) {
	return &domain.Document{}, nil
}

func TestPrefixPerType(t *testing.T) {
	cases := map[domain.DocumentType]string{
		domain.TypeInvoice:       "2024-",
		domain.TypeQuote:         "DEV-2024-",
		domain.TypeMileage:       "KM-2024-",
		domain.TypeRentReceipt:   "QUIT-2024-",
		domain.TypeRentalCharges: "REGUL-2024-",
	}
	for docType, want := range cases {
		got, err := Prefix(docType, 2024)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := Prefix("carnet", 2024)
	assert.Error(t, err)
}

func TestAllocateFirstOfYear(t *testing.T) {
	alloc := newTestAllocator(newMemoryRepo())

	doc, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-0001", doc.DocumentNumber)
}

func TestAllocateContinuesFromMax(t *testing.T) {
	repo := newMemoryRepo()
	alloc := newTestAllocator(repo)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := alloc.Allocate(ctx, domain.TypeInvoice, 2024, emptyDoc)
		require.NoError(t, err)
	}

	doc, err := alloc.Allocate(ctx, domain.TypeInvoice, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-0008", doc.DocumentNumber)
}

func TestAllocateYearsAndTypesAreIndependent(t *testing.T) {
	repo := newMemoryRepo()
	alloc := newTestAllocator(repo)
	ctx := context.Background()

	first, err := alloc.Allocate(ctx, domain.TypeInvoice, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-0001", first.DocumentNumber)

	nextYear, err := alloc.Allocate(ctx, domain.TypeInvoice, 2025, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2025-0001", nextYear.DocumentNumber)

	quote, err := alloc.Allocate(ctx, domain.TypeQuote, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "DEV-2024-0001", quote.DocumentNumber)
}

func TestAllocateWidensPastFourDigits(t *testing.T) {
	repo := newMemoryRepo()
	repo.docs["2024-9999"] = &domain.Document{
		DocumentType:   domain.TypeInvoice,
		DocumentNumber: "2024-9999",
	}
	alloc := newTestAllocator(repo)

	doc, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-10000", doc.DocumentNumber)
}

func TestAllocateConcurrentDistinctNumbers(t *testing.T) {
	const writers = 8

	repo := newMemoryRepo()
	alloc := newTestAllocator(repo)

	var wg sync.WaitGroup
	numbers := make([]string, writers)
	errs := make([]error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := alloc.Allocate(context.Background(), domain.TypeRentReceipt, 2024, emptyDoc)
			if err != nil {
				errs[i] = err
				return
			}
			numbers[i] = doc.DocumentNumber
		}(i)
	}
	wg.Wait()

	var got []string
	for i := range numbers {
		// Retries are bounded, so heavy contention may legitimately fail;
		// what must never happen is two writers sharing a number.
		if errs[i] != nil {
			assert.Equal(t, domain.KindAllocationFailure, domain.KindOf(errs[i]))
			continue
		}
		got = append(got, numbers[i])
	}

	sort.Strings(got)
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1], got[i], "allocated numbers must be distinct")
	}
	assert.NotEmpty(t, got)
	assert.Len(t, repo.docs, len(got))
}

func TestAllocateRetriesOnStaleRead(t *testing.T) {
	repo := newMemoryRepo()
	alloc := newTestAllocator(repo)

	// Simulate a rival committing 2024-0001 between our read and insert.
	stolen := false
	repo.maxHook = func() {
		if stolen {
			return
		}
		stolen = true
		repo.mu.Lock()
		repo.docs["2024-0001"] = &domain.Document{
			DocumentType:   domain.TypeInvoice,
			DocumentNumber: "2024-0001",
		}
		repo.mu.Unlock()
	}

	doc, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	require.NoError(t, err)
	assert.Equal(t, "2024-0002", doc.DocumentNumber)
}

func TestAllocateExhaustsRetries(t *testing.T) {
	repo := newMemoryRepo()
	repo.insertErr = domain.DuplicateNumber("2024-0001")
	alloc := newTestAllocator(repo)

	_, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	assert.Equal(t, domain.KindAllocationFailure, domain.KindOf(err))
}

func TestAllocateStorageDownFailsFast(t *testing.T) {
	down := errors.New("connection refused")

	repo := newMemoryRepo()
	repo.readErr = domain.StorageUnavailable(down)
	alloc := newTestAllocator(repo)

	_, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	assert.Equal(t, domain.KindStorageUnavailable, domain.KindOf(err))
	assert.ErrorIs(t, err, down)
}

func TestAllocateRejectsMalformedExistingNumber(t *testing.T) {
	repo := newMemoryRepo()
	repo.docs["2024-abcd"] = &domain.Document{
		DocumentType:   domain.TypeInvoice,
		DocumentNumber: "2024-abcd",
	}
	alloc := newTestAllocator(repo)

	_, err := alloc.Allocate(context.Background(), domain.TypeInvoice, 2024, emptyDoc)
	assert.Equal(t, domain.KindAllocationFailure, domain.KindOf(err))
}
