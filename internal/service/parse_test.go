package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terminaltitans/skillchain/internal/model"
)

const authenticVerdict = `{
	"candidateName": "Anil Kumar K R",
	"overallAuthenticityScore": 96,
	"isDocumentAuthentic": true,
	"documentForgeryAnalysis": "No pixel patching or font inconsistencies detected.",
	"summary": "Professional resume with consistent claims.",
	"skills": [
		{"skillName": "React.js", "confidenceScore": 95, "status": "Verified", "reasoning": "Ten years of detailed project history."},
		{"skillName": "Blockchain", "confidenceScore": 40, "status": "Needs Review", "reasoning": "Mentioned once without context."}
	],
	"certifications": [
		{"name": "Senior Frontend Developer", "issuer": "SelfAttested", "issueDate": "2024-01-01", "credentialId": "C-1", "description": "Resume-derived role"}
	],
	"socialIntegrity": {
		"githubMatch": "Verified",
		"linkedinMatch": "Not Provided",
		"analysis": "GitHub activity aligns with claimed stack."
	}
}`

func TestParseAnalysisText(t *testing.T) {
	result, err := parseAnalysisText(authenticVerdict)
	require.NoError(t, err)

	assert.Equal(t, "Anil Kumar K R", result.CandidateName)
	assert.InDelta(t, 96, result.OverallAuthenticityScore, 0.001)
	assert.True(t, result.IsDocumentAuthentic)

	require.Len(t, result.Skills, 2)
	assert.Equal(t, model.SkillVerified, result.Skills[0].Status)
	assert.Equal(t, model.SkillNeedsReview, result.Skills[1].Status)

	require.Len(t, result.Certifications, 1)
	assert.Equal(t, "C-1", result.Certifications[0].CredentialID)

	require.NotNil(t, result.SocialIntegrity)
	assert.Equal(t, model.SocialVerified, result.SocialIntegrity.GithubMatch)
	assert.Equal(t, model.SocialNotProvided, result.SocialIntegrity.LinkedinMatch)
}

func TestParseAnalysisText_RejectedDocument(t *testing.T) {
	result, err := parseAnalysisText(`{
		"candidateName": "Unknown",
		"overallAuthenticityScore": 8,
		"isDocumentAuthentic": false,
		"documentForgeryAnalysis": "Visible patching behind the grade field.",
		"summary": "Likely tampered certificate.",
		"skills": [],
		"certifications": []
	}`)
	require.NoError(t, err)

	assert.False(t, result.IsDocumentAuthentic)
	assert.Empty(t, result.Certifications)
	assert.Nil(t, result.SocialIntegrity)
}

func TestParseAnalysisText_InvalidJSON(t *testing.T) {
	_, err := parseAnalysisText("I'm sorry, I cannot analyze this document.")
	assert.Error(t, err)
}
