package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/terminaltitans/skillchain/internal/model"
	"gorm.io/gorm"
)

// LedgerRepository is the postgres-backed ledger, the swappable "real store"
// slot behind the same resolver contract the memory ledger serves. It also
// carries the pgvector column used by the semantic search endpoint.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db}
}

func (r *LedgerRepository) Resolve(ctx context.Context, query string) (*model.LedgerRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	var record model.LedgerRecord
	err := r.db.WithContext(ctx).
		Where("lower(nft_id) = ? OR lower(did) = ?", q, q).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *LedgerRepository) CreateRecord(record *model.LedgerRecord) error {
	return r.db.Create(record).Error
}

func (r *LedgerRepository) UpdateRecord(record *model.LedgerRecord) error {
	return r.db.Save(record).Error
}

func (r *LedgerRepository) GetRecords() ([]model.LedgerRecord, error) {
	var records []model.LedgerRecord
	err := r.db.Find(&records).Error
	return records, err
}

// SearchRecords ranks records by embedding distance to the query vector.
func (r *LedgerRepository) SearchRecords(embedding pgvector.Vector, topK int) ([]model.LedgerRecord, error) {
	var records []model.LedgerRecord
	err := r.db.Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM ledger_records
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&records).Error
	return records, err
}

// Seed inserts the demo corpus, skipping NFT ids that already exist so
// restarts do not duplicate records.
func (r *LedgerRepository) Seed(records []model.LedgerRecord) error {
	for i := range records {
		var count int64
		if err := r.db.Model(&model.LedgerRecord{}).
			Where("nft_id = ?", records[i].NFTID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := r.db.Create(&records[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
