package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terminaltitans/skillchain/internal/config"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/terminaltitans/skillchain/internal/service"
	"github.com/terminaltitans/skillchain/internal/util"
)

// maxDocumentSize caps uploads at 5 MiB, matching the gateway's inline
// payload limit.
const maxDocumentSize = 5 * 1024 * 1024

// image/jpg is a browser quirk, accepted as an alias of image/jpeg.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
}

var (
	ErrAnalysisInProgress = errors.New("an analysis is already in progress")
	ErrNothingToAnalyze   = errors.New("nothing to analyze: provide text or a document")
	ErrCannotMint         = errors.New("cannot mint a rejected or empty document")
	ErrAlreadyMinted      = errors.New("credential already in your wallet")
)

// SubmitInput carries one verification attempt's inputs. The selected
// document is taken from the session, not from here.
type SubmitInput struct {
	Text        string
	GithubURL   string
	LinkedinURL string
	PrivacyMode bool
}

// VerificationUsecase is the state machine driving one verification attempt
// per user: idle, analyzing (optionally generating a privacy proof first),
// then resolved with a result or a categorized error.
type VerificationUsecase struct {
	sessions       *SessionStore
	gateway        service.AnalysisGateway
	ids            util.IDGenerator
	analyzeTimeout time.Duration
	proofDelay     time.Duration
}

func NewVerificationUsecase(sessions *SessionStore, gateway service.AnalysisGateway, ids util.IDGenerator, cfg *config.PortalConfig) *VerificationUsecase {
	return &VerificationUsecase{
		sessions:       sessions,
		gateway:        gateway,
		ids:            ids,
		analyzeTimeout: cfg.AnalyzeTimeout,
		proofDelay:     cfg.ProofDelay,
	}
}

// Session returns a snapshot of the user's attempt state.
func (uc *VerificationUsecase) Session(user model.User) model.VerificationSession {
	e := uc.sessions.entry(user.Email)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SelectDocument validates and stores an uploaded document. Acceptance
// invalidates any previous result: a new document means a new analysis.
func (uc *VerificationUsecase) SelectDocument(user model.User, doc *model.Document) error {
	if !allowedMediaTypes[doc.MediaType] {
		return model.NewVerifyError(model.ErrUnsupportedFileType,
			"Unsupported file format. Please upload a PDF, JPG, or PNG file.")
	}
	if doc.Size > maxDocumentSize {
		return model.NewVerifyError(model.ErrFileTooLarge,
			"File size exceeds the 5MB limit. Please compress your file or try a smaller one.")
	}

	e := uc.sessions.entry(user.Email)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SelectedDocument = doc
	e.state.LastError = nil
	e.state.Result = nil
	return nil
}

// ClearDocument removes the selected document and the result it produced.
// Input text and social links are untouched.
func (uc *VerificationUsecase) ClearDocument(user model.User) {
	e := uc.sessions.entry(user.Email)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.SelectedDocument = nil
	e.state.LastError = nil
	e.state.Result = nil
}

// ClearSession resets the whole attempt: text, social links, document,
// result and error. The privacy toggle keeps its setting.
func (uc *VerificationUsecase) ClearSession(user model.User) {
	e := uc.sessions.entry(user.Email)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.InputText = ""
	e.state.GithubURL = ""
	e.state.LinkedinURL = ""
	e.state.SelectedDocument = nil
	e.state.Result = nil
	e.state.LastError = nil
}

// Submit runs one verification attempt end to end. It rejects when an
// attempt is already analyzing or when there is no input at all; otherwise
// it clears the previous outcome, optionally simulates proof generation,
// and calls the gateway under an explicit deadline. Gateway failures resolve
// the attempt with a categorized error; they are never re-thrown raw.
func (uc *VerificationUsecase) Submit(ctx context.Context, user model.User, in SubmitInput) (*model.AnalysisResult, error) {
	e := uc.sessions.entry(user.Email)

	e.mu.Lock()
	if e.state.IsAnalyzing {
		e.mu.Unlock()
		return nil, ErrAnalysisInProgress
	}
	e.state.InputText = in.Text
	e.state.GithubURL = in.GithubURL
	e.state.LinkedinURL = in.LinkedinURL
	e.state.PrivacyModeEnabled = in.PrivacyMode
	doc := e.state.SelectedDocument
	if strings.TrimSpace(in.Text) == "" && doc == nil {
		e.mu.Unlock()
		return nil, ErrNothingToAnalyze
	}
	e.state.Result = nil
	e.state.LastError = nil
	e.state.IsAnalyzing = true
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, uc.analyzeTimeout)
	defer cancel()

	result, err := uc.analyze(ctx, e, in, doc)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.IsAnalyzing = false
	e.state.IsGeneratingProof = false
	if err != nil {
		verr := classifyGatewayError(err)
		e.state.LastError = verr
		return nil, verr
	}
	e.state.Result = result
	return result, nil
}

func (uc *VerificationUsecase) analyze(ctx context.Context, e *sessionEntry, in SubmitInput, doc *model.Document) (*model.AnalysisResult, error) {
	if in.PrivacyMode {
		e.mu.Lock()
		e.state.IsGeneratingProof = true
		e.mu.Unlock()
		select {
		case <-time.After(uc.proofDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		e.mu.Lock()
		e.state.IsGeneratingProof = false
		e.mu.Unlock()
	}

	return uc.gateway.Analyze(ctx, model.AnalysisRequest{
		Text:     in.Text,
		Document: doc,
		Social:   model.SocialLinks{Github: in.GithubURL, Linkedin: in.LinkedinURL},
	})
}

// Mint promotes the current result's certification drafts into the wallet.
// Valid only for an authentic result with at least one draft. Each draft
// gets a fresh mock identifier; drafts already in the wallet by
// (credentialId, name) are dropped, and an all-duplicate mint reports
// ErrAlreadyMinted without touching the wallet.
func (uc *VerificationUsecase) Mint(user model.User) ([]model.MintedCredential, error) {
	e := uc.sessions.entry(user.Email)

	e.mu.Lock()
	result := e.state.Result
	if result == nil || !result.IsDocumentAuthentic || len(result.Certifications) == 0 {
		e.mu.Unlock()
		return nil, ErrCannotMint
	}
	privacy := e.state.PrivacyModeEnabled
	social := model.SocialLinks{Github: e.state.GithubURL, Linkedin: e.state.LinkedinURL}
	e.mu.Unlock()

	now := time.Now()
	minted := make([]model.MintedCredential, 0, len(result.Certifications))
	for _, draft := range result.Certifications {
		cred := model.MintedCredential{
			ID:           uuid.New(),
			Name:         draft.Name,
			Issuer:       draft.Issuer,
			IssueDate:    draft.IssueDate,
			CredentialID: draft.CredentialID,
			Description:  draft.Description,
			Score:        result.OverallAuthenticityScore,
			NFTID:        uc.ids.NFTID(),
			SocialLinks:  social,
			Skills:       result.Skills,
			MintedAt:     now,
		}
		if privacy {
			cred.ZKProof = uc.ids.ZKProof()
		}
		minted = append(minted, cred)
	}

	added := uc.sessions.Wallet(user).Add(minted...)
	if len(added) == 0 {
		return nil, ErrAlreadyMinted
	}
	return added, nil
}

// Wallet exposes the user's credential wallet to the HTTP surface.
func (uc *VerificationUsecase) Wallet(user model.User) *CredentialWallet {
	return uc.sessions.Wallet(user)
}

// Logout clears the wallet only. The in-flight attempt state deliberately
// survives logout; ClearSession is the explicit reset for it.
func (uc *VerificationUsecase) Logout(user model.User) {
	uc.sessions.Wallet(user).Clear()
}

// classifyGatewayError maps a raw gateway or transport failure into the
// fixed set of user-facing categories.
func classifyGatewayError(err error) *model.VerifyError {
	if errors.Is(err, context.DeadlineExceeded) {
		return model.NewVerifyError(model.ErrRequestTimeout,
			"Verification timed out. The server took too long to respond. Please try again.")
	}

	var gerr *model.GatewayError
	if errors.As(err, &gerr) {
		if gerr.SafetyBlocked {
			return model.NewVerifyError(model.ErrContentSafetyRejected,
				"The document was flagged by safety filters and cannot be processed.")
		}
		switch gerr.StatusCode {
		case 400:
			return model.NewVerifyError(model.ErrMalformedDocument,
				"The document content could not be processed. It might be corrupted or empty.")
		case 401, 403:
			return model.NewVerifyError(model.ErrGatewayAuthFailure,
				"Authentication with the AI service failed. Please check your configuration.")
		case 429, 500, 502, 503, 504:
			return model.NewVerifyError(model.ErrGatewayOverloaded,
				"The AI service is currently busy. Please try again in a moment.")
		}
	}

	var netErr net.Error
	msg := err.Error()
	if errors.As(err, &netErr) ||
		strings.Contains(msg, "connection") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "no such host") {
		return model.NewVerifyError(model.ErrNetworkFailure,
			"Network error. Please check your internet connection.")
	}

	return model.NewVerifyError(model.ErrUnclassified,
		fmt.Sprintf("An unexpected error occurred during verification: %s", msg))
}
