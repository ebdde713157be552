package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionDID is the placeholder decentralized identifier stamped on every
// credential minted in the current session. It is not a resolvable DID.
const SessionDID = "did:cardano:889025946c1e550c"

type SkillStatus string

const (
	SkillVerified          SkillStatus = "Verified"
	SkillNeedsReview       SkillStatus = "Needs Review"
	SkillLikelyExaggerated SkillStatus = "Likely Exaggerated"
)

type SocialMatch string

const (
	SocialVerified    SocialMatch = "Verified"
	SocialMismatch    SocialMatch = "Mismatch"
	SocialNotProvided SocialMatch = "Not Provided"
)

// SkillAssertion is a single skill claim judged by the analysis gateway.
// Immutable once produced.
type SkillAssertion struct {
	SkillName       string      `json:"skillName"`
	ConfidenceScore float64     `json:"confidenceScore"` // 0-100
	Status          SkillStatus `json:"status"`
	Reasoning       string      `json:"reasoning"`
}

type SocialIntegrity struct {
	GithubMatch   SocialMatch `json:"githubMatch"`
	LinkedinMatch SocialMatch `json:"linkedinMatch"`
	Analysis      string      `json:"analysis"`
}

// CertificationDraft is the unconfirmed extraction inside an AnalysisResult,
// before it is minted into the wallet.
type CertificationDraft struct {
	Name         string `json:"name"`
	Issuer       string `json:"issuer"`
	IssueDate    string `json:"issueDate"`
	CredentialID string `json:"credentialId"`
	Description  string `json:"description"`
}

// AnalysisResult is the gateway's verdict for one verification attempt.
// Held only for the current attempt; superseded or cleared on every new one.
// Certifications is empty whenever the document was judged inauthentic
// (gateway contract).
type AnalysisResult struct {
	CandidateName            string               `json:"candidateName"`
	OverallAuthenticityScore float64              `json:"overallAuthenticityScore"` // 0-100
	IsDocumentAuthentic      bool                 `json:"isDocumentAuthentic"`
	DocumentForgeryAnalysis  string               `json:"documentForgeryAnalysis"`
	Summary                  string               `json:"summary"`
	Skills                   []SkillAssertion     `json:"skills"`
	Certifications           []CertificationDraft `json:"certifications"`
	SocialIntegrity          *SocialIntegrity     `json:"socialIntegrity,omitempty"`
}

type SocialLinks struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
}

// MintedCredential is a CertificationDraft promoted into the wallet. Never
// mutated after creation.
type MintedCredential struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	Issuer       string           `json:"issuer"`
	IssueDate    string           `json:"issueDate"`
	CredentialID string           `json:"credentialId"`
	Description  string           `json:"description"`
	Score        float64          `json:"score"`
	NFTID        string           `json:"nftId"`
	ZKProof      string           `json:"zkProof,omitempty"`
	SocialLinks  SocialLinks      `json:"socialLinks"`
	Skills       []SkillAssertion `json:"skills"`
	MintedAt     time.Time        `json:"mintedAt"`
}
