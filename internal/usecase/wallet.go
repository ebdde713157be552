package usecase

import (
	"strings"
	"sync"
	"time"

	"github.com/terminaltitans/skillchain/internal/model"
)

// CredentialWallet is the session-scoped collection of minted credentials,
// most-recently-minted-first. Append-only within a session; Clear is only
// invoked on explicit logout. Never persisted.
type CredentialWallet struct {
	mu    sync.RWMutex
	owner model.User
	creds []model.MintedCredential
}

func NewCredentialWallet(owner model.User) *CredentialWallet {
	return &CredentialWallet{owner: owner}
}

func (w *CredentialWallet) Owner() model.User {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.owner
}

// Add prepends the given credentials, dropping any whose (credentialId,
// name) pair already exists in the wallet. Returns the survivors; an empty
// return means everything was a duplicate and the wallet is unchanged.
func (w *CredentialWallet) Add(creds ...model.MintedCredential) []model.MintedCredential {
	w.mu.Lock()
	defer w.mu.Unlock()

	var added []model.MintedCredential
	for _, c := range creds {
		if w.contains(c.CredentialID, c.Name) {
			continue
		}
		added = append(added, c)
	}
	if len(added) > 0 {
		w.creds = append(append([]model.MintedCredential{}, added...), w.creds...)
	}
	return added
}

func (w *CredentialWallet) contains(credentialID, name string) bool {
	for _, existing := range w.creds {
		if existing.CredentialID == credentialID && existing.Name == name {
			return true
		}
	}
	return false
}

func (w *CredentialWallet) All() []model.MintedCredential {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]model.MintedCredential, len(w.creds))
	copy(out, w.creds)
	return out
}

func (w *CredentialWallet) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.creds)
}

func (w *CredentialWallet) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.creds = nil
}

// Search performs case-insensitive substring matching across candidate
// name, credential name, issuer, credential id and nft id. Absence of a
// match is a normal empty result.
func (w *CredentialWallet) Search(term string) []model.MintedCredential {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	ownerMatches := strings.Contains(strings.ToLower(w.owner.Name), term)
	var results []model.MintedCredential
	for _, c := range w.creds {
		if ownerMatches ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Issuer), term) ||
			strings.Contains(strings.ToLower(c.CredentialID), term) ||
			strings.Contains(strings.ToLower(c.NFTID), term) {
			results = append(results, c)
		}
	}
	return results
}

// ProjectLedger maps every wallet entry into the employer-facing ledger
// record shape, stamped with the session DID.
func (w *CredentialWallet) ProjectLedger() []model.LedgerRecord {
	w.mu.RLock()
	defer w.mu.RUnlock()

	records := make([]model.LedgerRecord, 0, len(w.creds))
	for _, c := range w.creds {
		skills := make([]model.LedgerSkill, 0, len(c.Skills))
		for _, s := range c.Skills {
			skills = append(skills, model.LedgerSkill{Name: s.SkillName, Score: s.ConfidenceScore})
		}
		candidateName := w.owner.Name
		if candidateName == "" {
			candidateName = "Guest Candidate"
		}
		records = append(records, model.LedgerRecord{
			NFTID:            c.NFTID,
			DID:              model.SessionDID,
			CandidateName:    candidateName,
			Role:             c.Name,
			VerificationDate: c.MintedAt.Format(time.DateOnly),
			Confidence:       c.Score,
			Skills:           skills,
		})
	}
	return records
}
