package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopbill/billing-api/internal/domain/repository"
)

// InvoiceSequencer allocates year-scoped invoice numbers of the form
// PREFIX-YYYY-NNNN. Sequences restart at 0001 each calendar year, and the
// plain (INV-) and GST (GST-) sequences advance independently.
//
// Allocation must happen inside the finalize transaction so a rolled-back
// finalize does not burn a number; the mutex serializes concurrent finalizes
// within the process so two transactions cannot read the same latest number.
type InvoiceSequencer struct {
	mu       sync.Mutex
	billRepo repository.BillRepository
	now      func() time.Time
}

// NewInvoiceSequencer creates a new invoice number allocator.
func NewInvoiceSequencer(billRepo repository.BillRepository) *InvoiceSequencer {
	return &InvoiceSequencer{
		billRepo: billRepo,
		now:      time.Now,
	}
}

// NextInvoiceNumber allocates the next number in the INV- sequence.
func (s *InvoiceSequencer) NextInvoiceNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("INV-%d-", s.now().Year())
	latest, err := s.billRepo.LatestInvoiceNumber(ctx, prefix)
	if err != nil {
		return "", err
	}
	return nextInSequence(prefix, latest)
}

// NextGSTInvoiceNumber allocates the next number in the GST- sequence.
func (s *InvoiceSequencer) NextGSTInvoiceNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := fmt.Sprintf("GST-%d-", s.now().Year())
	latest, err := s.billRepo.LatestGSTInvoiceNumber(ctx, prefix)
	if err != nil {
		return "", err
	}
	return nextInSequence(prefix, latest)
}

func nextInSequence(prefix, latest string) (string, error) {
	if latest == "" {
		return prefix + "0001", nil
	}

	idx := strings.LastIndex(latest, "-")
	if idx < 0 {
		return "", fmt.Errorf("malformed invoice number %q", latest)
	}
	n, err := strconv.Atoi(latest[idx+1:])
	if err != nil {
		return "", fmt.Errorf("malformed invoice number %q: %w", latest, err)
	}
	return fmt.Sprintf("%s%04d", prefix, n+1), nil
}
