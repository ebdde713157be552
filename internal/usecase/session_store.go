package usecase

import (
	"sync"

	"github.com/terminaltitans/skillchain/internal/model"
)

// sessionEntry pairs one user's attempt state with the lock that serializes
// its transitions. Only one attempt may be analyzing at a time.
type sessionEntry struct {
	mu    sync.Mutex
	state model.VerificationSession
}

// SessionStore owns every user's verification session and wallet. All
// mutation goes through the usecase operations; nothing below hands out the
// raw state for ad-hoc assignment.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	wallets  map[string]*CredentialWallet
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		wallets:  make(map[string]*CredentialWallet),
	}
}

func (s *SessionStore) entry(email string) *sessionEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[email]
	if !ok {
		e = &sessionEntry{}
		s.sessions[email] = e
	}
	return e
}

// Wallet returns the user's wallet, creating an empty one on first use.
func (s *SessionStore) Wallet(user model.User) *CredentialWallet {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wallets[user.Email]
	if !ok {
		w = NewCredentialWallet(user)
		s.wallets[user.Email] = w
	}
	return w
}

// Wallets returns every live wallet, for projecting minted credentials into
// the ledger lookup corpus.
func (s *SessionStore) Wallets() []*CredentialWallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*CredentialWallet, 0, len(s.wallets))
	for _, w := range s.wallets {
		out = append(out, w)
	}
	return out
}
