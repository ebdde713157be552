package service

import (
	"fmt"

	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/tidwall/gjson"
)

// parseAnalysisText maps the gateway's JSON verdict into the credential
// model. The payload is trusted as-is; no score/verdict cross-check happens
// here.
func parseAnalysisText(text string) (*model.AnalysisResult, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("analysis response is not valid JSON")
	}
	r := gjson.Parse(text)

	result := &model.AnalysisResult{
		CandidateName:            r.Get("candidateName").String(),
		OverallAuthenticityScore: r.Get("overallAuthenticityScore").Float(),
		IsDocumentAuthentic:      r.Get("isDocumentAuthentic").Bool(),
		DocumentForgeryAnalysis:  r.Get("documentForgeryAnalysis").String(),
		Summary:                  r.Get("summary").String(),
	}

	for _, s := range r.Get("skills").Array() {
		result.Skills = append(result.Skills, model.SkillAssertion{
			SkillName:       s.Get("skillName").String(),
			ConfidenceScore: s.Get("confidenceScore").Float(),
			Status:          model.SkillStatus(s.Get("status").String()),
			Reasoning:       s.Get("reasoning").String(),
		})
	}

	for _, cert := range r.Get("certifications").Array() {
		result.Certifications = append(result.Certifications, model.CertificationDraft{
			Name:         cert.Get("name").String(),
			Issuer:       cert.Get("issuer").String(),
			IssueDate:    cert.Get("issueDate").String(),
			CredentialID: cert.Get("credentialId").String(),
			Description:  cert.Get("description").String(),
		})
	}

	if si := r.Get("socialIntegrity"); si.Exists() {
		result.SocialIntegrity = &model.SocialIntegrity{
			GithubMatch:   model.SocialMatch(si.Get("githubMatch").String()),
			LinkedinMatch: model.SocialMatch(si.Get("linkedinMatch").String()),
			Analysis:      si.Get("analysis").String(),
		}
	}

	return result, nil
}
