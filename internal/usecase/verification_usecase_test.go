package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terminaltitans/skillchain/internal/config"
	"github.com/terminaltitans/skillchain/internal/model"
)

type fakeGateway struct {
	analyze func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error)
}

func (f *fakeGateway) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
	return f.analyze(ctx, req)
}

type seqIDs struct{ n int }

func (g *seqIDs) NFTID() string {
	g.n++
	return fmt.Sprintf("NFT-%d", 1000+g.n)
}

func (g *seqIDs) ZKProof() string {
	return "zk-testproof12345...abcd"
}

func testUser() model.User {
	return model.User{Name: "Anil Kumar K R", Email: "anil@example.com", Role: model.RoleCandidate}
}

func authenticResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		CandidateName:            "Anil Kumar K R",
		OverallAuthenticityScore: 96,
		IsDocumentAuthentic:      true,
		Summary:                  "Professional resume, no tampering detected",
		Skills: []model.SkillAssertion{
			{SkillName: "React.js", ConfidenceScore: 95, Status: model.SkillVerified, Reasoning: "Ten years of claimed experience"},
		},
		Certifications: []model.CertificationDraft{
			{Name: "Senior Frontend Developer", Issuer: "SelfAttested", IssueDate: "2024-01-01", CredentialID: "C-1", Description: "Resume-derived role"},
		},
	}
}

func newTestUsecase(t *testing.T, gateway *fakeGateway, timeout time.Duration) *VerificationUsecase {
	t.Helper()
	return NewVerificationUsecase(NewSessionStore(), gateway, &seqIDs{}, &config.PortalConfig{
		Provider:       "gemini",
		AnalyzeTimeout: timeout,
		ProofDelay:     time.Millisecond,
	})
}

const anilResume = `Anil Kumar K R
Senior Frontend Developer

Skills:
- React.js: Expert
- Node.js: Advanced
- Cardano Smart Contracts: Beginner`

func TestSelectDocument_UnsupportedType(t *testing.T) {
	uc := newTestUsecase(t, &fakeGateway{}, time.Second)
	user := testUser()

	err := uc.SelectDocument(user, &model.Document{
		FileName:  "claims.txt",
		MediaType: "text/plain",
		Size:      100,
	})

	var verr *model.VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.ErrUnsupportedFileType, verr.Category)
	assert.Nil(t, uc.Session(user).SelectedDocument)
}

func TestSelectDocument_SizeLimit(t *testing.T) {
	uc := newTestUsecase(t, &fakeGateway{}, time.Second)
	user := testUser()

	err := uc.SelectDocument(user, &model.Document{
		FileName:  "cert.pdf",
		MediaType: "application/pdf",
		Size:      5*1024*1024 + 1,
	})
	var verr *model.VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.ErrFileTooLarge, verr.Category)
	assert.Nil(t, uc.Session(user).SelectedDocument)
	assert.False(t, uc.Session(user).IsAnalyzing)

	// exactly at the limit is fine
	err = uc.SelectDocument(user, &model.Document{
		FileName:  "cert.pdf",
		MediaType: "application/pdf",
		Size:      5 * 1024 * 1024,
	})
	require.NoError(t, err)
	require.NotNil(t, uc.Session(user).SelectedDocument)
}

func TestSelectDocument_InvalidatesPreviousResult(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})
	require.NoError(t, err)
	require.NotNil(t, uc.Session(user).Result)

	err = uc.SelectDocument(user, &model.Document{FileName: "new.png", MediaType: "image/png", Size: 10})
	require.NoError(t, err)

	session := uc.Session(user)
	assert.Nil(t, session.Result)
	assert.Nil(t, session.LastError)
}

func TestClearDocument_KeepsInputs(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	require.NoError(t, uc.SelectDocument(user, &model.Document{FileName: "cert.pdf", MediaType: "application/pdf", Size: 10}))
	_, err := uc.Submit(context.Background(), user, SubmitInput{
		Text:        anilResume,
		GithubURL:   "https://github.com/anilkumarkr",
		LinkedinURL: "https://linkedin.com/in/anilkumarkr",
	})
	require.NoError(t, err)

	uc.ClearDocument(user)

	session := uc.Session(user)
	assert.Nil(t, session.SelectedDocument)
	assert.Nil(t, session.Result)
	assert.Equal(t, anilResume, session.InputText)
	assert.Equal(t, "https://github.com/anilkumarkr", session.GithubURL)
	assert.Equal(t, "https://linkedin.com/in/anilkumarkr", session.LinkedinURL)
}

func TestClearSession_ResetsEverything(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{
		Text:      anilResume,
		GithubURL: "https://github.com/anilkumarkr",
	})
	require.NoError(t, err)

	uc.ClearSession(user)

	session := uc.Session(user)
	assert.Empty(t, session.InputText)
	assert.Empty(t, session.GithubURL)
	assert.Empty(t, session.LinkedinURL)
	assert.Nil(t, session.SelectedDocument)
	assert.Nil(t, session.Result)
}

func TestSubmit_RequiresInput(t *testing.T) {
	uc := newTestUsecase(t, &fakeGateway{}, time.Second)

	_, err := uc.Submit(context.Background(), testUser(), SubmitInput{Text: "   "})
	assert.ErrorIs(t, err, ErrNothingToAnalyze)
	assert.False(t, uc.Session(testUser()).IsAnalyzing)
}

func TestSubmit_Success(t *testing.T) {
	var gotReq model.AnalysisRequest
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		gotReq = req
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	result, err := uc.Submit(context.Background(), user, SubmitInput{
		Text:      anilResume,
		GithubURL: "https://github.com/anilkumarkr",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsDocumentAuthentic)
	assert.InDelta(t, 96, result.OverallAuthenticityScore, 0.001)
	assert.Equal(t, anilResume, gotReq.Text)
	assert.Equal(t, "https://github.com/anilkumarkr", gotReq.Social.Github)

	session := uc.Session(user)
	assert.False(t, session.IsAnalyzing)
	assert.False(t, session.IsGeneratingProof)
	assert.NotNil(t, session.Result)
	assert.Nil(t, session.LastError)
}

func TestSubmit_RejectedWhileAnalyzing(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		close(started)
		<-release
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})
		firstDone <- err
	}()

	<-started
	assert.True(t, uc.Session(user).IsAnalyzing)
	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})
	assert.ErrorIs(t, err, ErrAnalysisInProgress)

	close(release)
	require.NoError(t, <-firstDone)
}

func TestSubmit_Timeout(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	uc := newTestUsecase(t, gateway, 20*time.Millisecond)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})

	var verr *model.VerifyError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, model.ErrRequestTimeout, verr.Category)

	session := uc.Session(user)
	assert.Nil(t, session.Result)
	assert.False(t, session.IsAnalyzing)
	require.NotNil(t, session.LastError)
	assert.Equal(t, model.ErrRequestTimeout, session.LastError.Category)
}

func TestSubmit_ErrorCategoryMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.ErrorCategory
	}{
		{"bad input", &model.GatewayError{StatusCode: 400}, model.ErrMalformedDocument},
		{"auth 401", &model.GatewayError{StatusCode: 401}, model.ErrGatewayAuthFailure},
		{"auth 403", &model.GatewayError{StatusCode: 403}, model.ErrGatewayAuthFailure},
		{"overloaded 503", &model.GatewayError{StatusCode: 503}, model.ErrGatewayOverloaded},
		{"rate limited 429", &model.GatewayError{StatusCode: 429}, model.ErrGatewayOverloaded},
		{"safety", &model.GatewayError{SafetyBlocked: true}, model.ErrContentSafetyRejected},
		{"network", errors.New("dial tcp: connection refused"), model.ErrNetworkFailure},
		{"unknown", errors.New("boom"), model.ErrUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
				return nil, tt.err
			}}
			uc := newTestUsecase(t, gateway, time.Second)
			user := testUser()

			_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})

			var verr *model.VerifyError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Category)
			assert.Nil(t, uc.Session(user).Result)
		})
	}
}

func TestSubmit_PrivacyProofSubState(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume, PrivacyMode: true})
	require.NoError(t, err)

	session := uc.Session(user)
	assert.True(t, session.PrivacyModeEnabled)
	assert.False(t, session.IsGeneratingProof)
}

func TestMint_RejectsInauthentic(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return &model.AnalysisResult{
			CandidateName:            "Forger",
			OverallAuthenticityScore: 12,
			IsDocumentAuthentic:      false,
			DocumentForgeryAnalysis:  "patching behind the name",
		}, nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	// no result at all
	_, err := uc.Mint(user)
	assert.ErrorIs(t, err, ErrCannotMint)

	_, err = uc.Submit(context.Background(), user, SubmitInput{Text: "fake cert"})
	require.NoError(t, err)

	_, err = uc.Mint(user)
	assert.ErrorIs(t, err, ErrCannotMint)
	assert.Equal(t, 0, uc.Wallet(user).Len())
}

func TestMint_AppendsOnceAndDeduplicates(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})
	require.NoError(t, err)

	minted, err := uc.Mint(user)
	require.NoError(t, err)
	require.Len(t, minted, 1)
	assert.Regexp(t, regexp.MustCompile(`^NFT-\d{4}$`), minted[0].NFTID)
	assert.Equal(t, "Senior Frontend Developer", minted[0].Name)
	assert.InDelta(t, 96, minted[0].Score, 0.001)
	assert.Equal(t, 1, uc.Wallet(user).Len())

	// same unchanged result: second mint must not grow the wallet
	_, err = uc.Mint(user)
	assert.ErrorIs(t, err, ErrAlreadyMinted)
	assert.Equal(t, 1, uc.Wallet(user).Len())
}

func TestMint_AttachesProofInPrivacyMode(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume, PrivacyMode: true})
	require.NoError(t, err)

	minted, err := uc.Mint(user)
	require.NoError(t, err)
	require.Len(t, minted, 1)
	assert.Regexp(t, `^zk-`, minted[0].ZKProof)
	assert.Len(t, minted[0].Skills, 1)
}

func TestLogout_ClearsWalletOnly(t *testing.T) {
	gateway := &fakeGateway{analyze: func(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisResult, error) {
		return authenticResult(), nil
	}}
	uc := newTestUsecase(t, gateway, time.Second)
	user := testUser()

	_, err := uc.Submit(context.Background(), user, SubmitInput{Text: anilResume})
	require.NoError(t, err)
	_, err = uc.Mint(user)
	require.NoError(t, err)
	require.Equal(t, 1, uc.Wallet(user).Len())

	uc.Logout(user)

	assert.Equal(t, 0, uc.Wallet(user).Len())
	// the in-flight attempt state survives logout
	assert.Equal(t, anilResume, uc.Session(user).InputText)
}
