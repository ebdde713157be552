package dto

import "github.com/terminaltitans/skillchain/internal/model"

type RegisterRequest struct {
	Name     string `json:"name" validate:"omitempty,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=candidate employer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type SubmitRequest struct {
	Text        string `json:"text"`
	GithubURL   string `json:"githubUrl" validate:"omitempty,url"`
	LinkedinURL string `json:"linkedinUrl" validate:"omitempty,url"`
	PrivacyMode bool   `json:"privacyMode"`
}

// DocumentView exposes document metadata without the raw bytes.
type DocumentView struct {
	FileName  string `json:"fileName"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
}

type SessionView struct {
	InputText          string                `json:"inputText"`
	GithubURL          string                `json:"githubUrl"`
	LinkedinURL        string                `json:"linkedinUrl"`
	SelectedDocument   *DocumentView         `json:"selectedDocument,omitempty"`
	IsAnalyzing        bool                  `json:"isAnalyzing"`
	IsGeneratingProof  bool                  `json:"isGeneratingProof"`
	Result             *model.AnalysisResult `json:"result,omitempty"`
	Error              *model.VerifyError    `json:"error,omitempty"`
	PrivacyModeEnabled bool                  `json:"privacyModeEnabled"`
}

func NewSessionView(s model.VerificationSession) SessionView {
	view := SessionView{
		InputText:          s.InputText,
		GithubURL:          s.GithubURL,
		LinkedinURL:        s.LinkedinURL,
		IsAnalyzing:        s.IsAnalyzing,
		IsGeneratingProof:  s.IsGeneratingProof,
		Result:             s.Result,
		Error:              s.LastError,
		PrivacyModeEnabled: s.PrivacyModeEnabled,
	}
	if s.SelectedDocument != nil {
		view.SelectedDocument = &DocumentView{
			FileName:  s.SelectedDocument.FileName,
			MediaType: s.SelectedDocument.MediaType,
			Size:      s.SelectedDocument.Size,
		}
	}
	return view
}

type MintResponse struct {
	NFTIDs      []string                 `json:"nftIds"`
	Credentials []model.MintedCredential `json:"credentials"`
}
