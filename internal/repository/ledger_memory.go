package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/terminaltitans/skillchain/internal/model"
)

// LedgerResolver resolves a mock on-chain identifier or DID to a verified
// credential record. A nil record with a nil error means "not found";
// absence is a normal result, not a fault.
type LedgerResolver interface {
	Resolve(ctx context.Context, query string) (*model.LedgerRecord, error)
}

// MemoryLedger serves the seeded demo corpus when no database backend is
// configured.
type MemoryLedger struct {
	mu      sync.RWMutex
	records []model.LedgerRecord
}

func NewMemoryLedger(seed []model.LedgerRecord) *MemoryLedger {
	records := make([]model.LedgerRecord, len(seed))
	copy(records, seed)
	return &MemoryLedger{records: records}
}

// Resolve performs a case-insensitive exact match against each record's NFT
// id or DID and returns the first hit.
func (l *MemoryLedger) Resolve(_ context.Context, query string) (*model.LedgerRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.records {
		if strings.ToLower(l.records[i].NFTID) == q || strings.ToLower(l.records[i].DID) == q {
			record := l.records[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (l *MemoryLedger) Records() []model.LedgerRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.LedgerRecord, len(l.records))
	copy(out, l.records)
	return out
}
