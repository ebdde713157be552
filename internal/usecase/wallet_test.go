package usecase

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terminaltitans/skillchain/internal/model"
)

func sampleCredential(name, credentialID, nftID string) model.MintedCredential {
	return model.MintedCredential{
		ID:           uuid.New(),
		Name:         name,
		Issuer:       "SelfAttested",
		IssueDate:    "2024-01-01",
		CredentialID: credentialID,
		Description:  "Resume-derived role",
		Score:        96,
		NFTID:        nftID,
		Skills: []model.SkillAssertion{
			{SkillName: "React.js", ConfidenceScore: 95, Status: model.SkillVerified},
		},
		MintedAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}
}

func TestWalletAdd_PrependsNewestFirst(t *testing.T) {
	w := NewCredentialWallet(testUser())

	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))
	w.Add(sampleCredential("Backend Developer", "C-2", "NFT-1002"))

	all := w.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Backend Developer", all[0].Name)
	assert.Equal(t, "Frontend Developer", all[1].Name)
}

func TestWalletAdd_DeduplicatesByCredentialIDAndName(t *testing.T) {
	w := NewCredentialWallet(testUser())

	added := w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))
	require.Len(t, added, 1)

	// same pair, new nft id: still a duplicate
	added = w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-9999"))
	assert.Empty(t, added)
	assert.Equal(t, 1, w.Len())

	// same id but different name is a distinct credential
	added = w.Add(sampleCredential("Lead Developer", "C-1", "NFT-1003"))
	require.Len(t, added, 1)
	assert.Equal(t, 2, w.Len())
}

func TestWalletAdd_MixedBatchKeepsSurvivors(t *testing.T) {
	w := NewCredentialWallet(testUser())
	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))

	added := w.Add(
		sampleCredential("Frontend Developer", "C-1", "NFT-2001"),
		sampleCredential("Backend Developer", "C-2", "NFT-2002"),
	)

	require.Len(t, added, 1)
	assert.Equal(t, "Backend Developer", added[0].Name)
	assert.Equal(t, 2, w.Len())
}

func TestWalletClear(t *testing.T) {
	w := NewCredentialWallet(testUser())
	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))

	w.Clear()

	assert.Equal(t, 0, w.Len())
	assert.Empty(t, w.All())
}

func TestWalletSearch(t *testing.T) {
	w := NewCredentialWallet(testUser())
	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))
	w.Add(sampleCredential("Backend Developer", "C-2", "NFT-2048"))

	tests := []struct {
		name string
		term string
		want int
	}{
		{"nft id substring", "2048", 1},
		{"credential name, case-insensitive", "frontend", 1},
		{"issuer matches all", "selfattested", 2},
		{"owner name matches all", "anil", 2},
		{"no match", "blockchain auditor", 0},
		{"blank term", "   ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, w.Search(tt.term), tt.want)
		})
	}
}

func TestWalletProjectLedger(t *testing.T) {
	w := NewCredentialWallet(testUser())
	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))

	records := w.ProjectLedger()

	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, "NFT-1001", rec.NFTID)
	assert.Equal(t, model.SessionDID, rec.DID)
	assert.Equal(t, "Anil Kumar K R", rec.CandidateName)
	assert.Equal(t, "Frontend Developer", rec.Role)
	assert.Equal(t, "2026-08-28", rec.VerificationDate)
	assert.InDelta(t, 96, rec.Confidence, 0.001)
	require.Len(t, rec.Skills, 1)
	assert.Equal(t, "React.js", rec.Skills[0].Name)
}

func TestWalletProjectLedger_GuestFallback(t *testing.T) {
	w := NewCredentialWallet(model.User{Email: "guest@example.com"})
	w.Add(sampleCredential("Frontend Developer", "C-1", "NFT-1001"))

	records := w.ProjectLedger()

	require.Len(t, records, 1)
	assert.Equal(t, "Guest Candidate", records[0].CandidateName)
}
