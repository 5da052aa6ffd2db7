// Package storage provides the settled-receipt ledger. It lives for the
// process lifetime only.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/staytab/internal/domain"
	"github.com/hammamikhairi/staytab/internal/logger"
)

// Compile-time interface check.
var _ domain.ReceiptStore = (*MemoryLedger)(nil)

// MemoryLedger is an in-memory receipt store. Safe for concurrent access.
type MemoryLedger struct {
	mu       sync.RWMutex
	receipts map[string]*domain.SettledReceipt
	order    []string
	log      *logger.Logger
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger(log *logger.Logger) *MemoryLedger {
	return &MemoryLedger{
		receipts: make(map[string]*domain.SettledReceipt),
		log:      log,
	}
}

// Save stores a receipt, assigning a new UUID when ID is empty. Saving an
// existing ID overwrites it in place.
func (s *MemoryLedger) Save(ctx context.Context, receipt *domain.SettledReceipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if _, ok := s.receipts[receipt.ID]; !ok {
		s.order = append(s.order, receipt.ID)
	}
	s.receipts[receipt.ID] = receipt
	s.log.Debug("saved receipt %s (total=%d)", receipt.ID, receipt.Total)
	return nil
}

// Load retrieves a receipt by ID.
func (s *MemoryLedger) Load(ctx context.Context, id string) (*domain.SettledReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.receipts[id]
	if !ok {
		s.log.Debug("receipt not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// List returns every receipt ordered by settlement time, ties in save
// order.
func (s *MemoryLedger) List(ctx context.Context) ([]*domain.SettledReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SettledReceipt, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.receipts[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SettledAt.Before(out[j].SettledAt)
	})
	s.log.Debug("listing receipts, count=%d", len(out))
	return out, nil
}
