package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/terminaltitans/skillchain/internal/repository"
	"github.com/terminaltitans/skillchain/internal/service"
)

// LedgerUsecase serves the employer-facing lookup over the combined corpus:
// the configured resolver's records plus every live wallet projected into
// the same shape. repo and embedder are nil when the postgres backend or
// Gemini are not configured; the semantic endpoints report that instead of
// failing at startup.
type LedgerUsecase struct {
	resolver repository.LedgerResolver
	repo     *repository.LedgerRepository
	sessions *SessionStore
	embedder service.EmbeddingGenerator
}

func NewLedgerUsecase(resolver repository.LedgerResolver, repo *repository.LedgerRepository, sessions *SessionStore, embedder service.EmbeddingGenerator) *LedgerUsecase {
	return &LedgerUsecase{
		resolver: resolver,
		repo:     repo,
		sessions: sessions,
		embedder: embedder,
	}
}

// Verify resolves an NFT id or DID case-insensitively. Seeded records win
// over live wallet projections; a nil record means not found.
func (uc *LedgerUsecase) Verify(ctx context.Context, query string) (*model.LedgerRecord, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	record, err := uc.resolver.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	lq := strings.ToLower(q)
	for _, wallet := range uc.sessions.Wallets() {
		for _, projected := range wallet.ProjectLedger() {
			if strings.ToLower(projected.NFTID) == lq || strings.ToLower(projected.DID) == lq {
				record := projected
				return &record, nil
			}
		}
	}
	return nil, nil
}

// SemanticSearch ranks ledger records by embedding similarity to a free-text
// query. Requires the postgres backend and the Gemini embedder.
func (uc *LedgerUsecase) SemanticSearch(ctx context.Context, query string, topK int) ([]model.LedgerRecord, error) {
	if uc.repo == nil || uc.embedder == nil {
		return nil, fmt.Errorf("semantic search requires the postgres ledger backend and a Gemini API key")
	}
	if topK <= 0 {
		topK = 5
	}

	embedding, err := uc.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}
	return uc.repo.SearchRecords(pgvector.NewVector(embedding), topK)
}

// CreateRecordEmbeddings backfills the embedding column for every stored
// record, so semantic search has something to rank against.
func (uc *LedgerUsecase) CreateRecordEmbeddings(ctx context.Context) error {
	if uc.repo == nil || uc.embedder == nil {
		return fmt.Errorf("embeddings require the postgres ledger backend and a Gemini API key")
	}

	records, err := uc.repo.GetRecords()
	if err != nil {
		return err
	}
	for i := range records {
		embedding, err := uc.embedder.GenerateEmbedding(ctx, recordEmbeddingText(&records[i]))
		if err != nil {
			return err
		}
		records[i].Embedding = pgvector.NewVector(embedding)
		if err := uc.repo.UpdateRecord(&records[i]); err != nil {
			return err
		}
	}
	return nil
}

func recordEmbeddingText(r *model.LedgerRecord) string {
	var skills []string
	for _, s := range r.Skills {
		skills = append(skills, s.Name)
	}
	return fmt.Sprintf("Candidate: %s\nRole: %s\nSkills: %s", r.CandidateName, r.Role, strings.Join(skills, ", "))
}
