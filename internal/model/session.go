package model

type UserRole string

const (
	RoleCandidate UserRole = "candidate"
	RoleEmployer  UserRole = "employer"
)

type User struct {
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// Document is an uploaded credential file held for the current attempt.
// TextPreview carries the extracted PDF text layer when one exists; it is
// sent alongside the raw bytes to give the gateway a cheap text channel.
type Document struct {
	FileName    string `json:"fileName"`
	MediaType   string `json:"mediaType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
	TextPreview string `json:"-"`
}

// VerificationSession is the mutable state of one user's in-progress
// verification attempt. It survives navigation and logout; only the explicit
// clear operations reset it.
type VerificationSession struct {
	InputText          string          `json:"inputText"`
	GithubURL          string          `json:"githubUrl"`
	LinkedinURL        string          `json:"linkedinUrl"`
	SelectedDocument   *Document       `json:"selectedDocument,omitempty"`
	IsAnalyzing        bool            `json:"isAnalyzing"`
	IsGeneratingProof  bool            `json:"isGeneratingProof"`
	Result             *AnalysisResult `json:"result,omitempty"`
	LastError          *VerifyError    `json:"error,omitempty"`
	PrivacyModeEnabled bool            `json:"privacyModeEnabled"`
}

// AnalysisRequest is the contract sent to the analysis gateway.
type AnalysisRequest struct {
	Text     string
	Document *Document
	Social   SocialLinks
}
