package service

import (
	"fmt"

	"github.com/terminaltitans/skillchain/internal/model"
	"google.golang.org/genai"
)

// systemInstruction frames the model as both a forensic analyst and a
// scanner. Wording is part of the gateway contract: it drives the
// default-to-authentic decision logic and the empty-certifications rule.
const systemInstruction = "You are SkillChain's Verification Engine. You act as both a Forensic Analyst (detecting fakes) and a Digital Scanner (reading QR/IDs). Analyze documents for authenticity and cross-reference with provided social links."

func buildAnalysisPrompt(req model.AnalysisRequest) string {
	inputType := "Text"
	if req.Document != nil {
		inputType = req.Document.MediaType
	}
	github := req.Social.Github
	if github == "" {
		github = "Not provided"
	}
	linkedin := req.Social.Linkedin
	if linkedin == "" {
		linkedin = "Not provided"
	}

	text := req.Text
	if req.Document != nil && req.Document.TextPreview != "" {
		text += "\n\nExtracted document text:\n" + req.Document.TextPreview
	}

	return fmt.Sprintf(`
Analyze the input document for AUTHENTICITY and CROSS-REFERENCE with social profiles.
Input Type: %s

Provided Social Links:
- GitHub: %s
- LinkedIn: %s

TASK: Determine if this certificate/resume is REAL or FAKE, and if it aligns with the provided social identity.

1. **SCANNER MODE (High Priority)**:
   - **QR Codes / Barcodes**: Scan the visual image for QR codes or Barcodes. Their presence is a STRONG indicator of a verifiable, real certificate.
   - **Verification URLs/IDs**: Look for text like "Credential ID:", "Certificate No:", "Verify at...", or URLs.
   - **Digital Seals**: Look for official digital signatures or seals.
   - **Rule**: If a QR code, Barcode, or Credential ID/Link is found, the document is likely **AUTHENTIC**.

2. **Visual Forgery Detection (Nuanced)**:
   - **Compression vs. Tampering**: Do NOT flag general blurriness, JPEG artifacts, or low resolution as forgery. Real certificates are often compressed.
   - **Localized Editing**: ONLY flag as fake if there is clear evidence of "patching" (a rectangle of different background color) specifically behind the Candidate Name or Date.
   - **Font Consistency**: Check if the Name font matches the rest of the document's design.

3. **Content Logic**:
   - **Typos**: Official certificates rarely have typos in the Issuer's name (e.g., "Universty").
   - **Impossible Dates**: Dates in the future or invalid ranges.

4. **Social Cross-Reference (Integrity Check)**:
   - Check if the Resume/Certificate explicitly mentions the provided GitHub/LinkedIn URLs.
   - Check if the candidate name in the document roughly matches the likely username/slug in the provided URLs.
   - Check if the skills claimed in the resume are consistent with what one would expect on the provided profiles.
   - If URLs are provided but NOT found in the document, mark as 'Mismatch' or 'Not Verified'.

5. **Decision Logic**:
   - **DEFAULT to TRUE (Authentic)** for professional-looking documents, templates, or scans, UNLESS there is specific, undeniable evidence of tampering.
   - **TRUE** if scanner elements (QR, ID, Link) are present.
   - **FALSE** only if there is obvious patching, mismatched fonts on the name, or logical impossibilities.

6. **Extraction**:
   - If FAKE: Return empty certifications list.
   - If REAL: Extract Name, Certification Name, Issuer, Date, Credential ID, and a short description.

Return JSON:
- candidateName (string)
- overallAuthenticityScore (number 0-100: <50 is Fake, >85 is Verified)
- isDocumentAuthentic (boolean)
- documentForgeryAnalysis (string)
- socialIntegrity: {githubMatch, linkedinMatch, analysis}
- summary (string)
- skills: [{skillName, confidenceScore, status, reasoning}]
- certifications: [{name, issuer, issueDate, credentialId, description}] (Leave empty if Fake)

Input Text Context: "%s"
`, inputType, github, linkedin, text)
}

func analysisResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"candidateName":            {Type: genai.TypeString},
			"overallAuthenticityScore": {Type: genai.TypeNumber},
			"isDocumentAuthentic":      {Type: genai.TypeBoolean},
			"documentForgeryAnalysis":  {Type: genai.TypeString},
			"summary":                  {Type: genai.TypeString},
			"socialIntegrity": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"githubMatch":   {Type: genai.TypeString, Enum: []string{"Verified", "Mismatch", "Not Provided"}},
					"linkedinMatch": {Type: genai.TypeString, Enum: []string{"Verified", "Mismatch", "Not Provided"}},
					"analysis":      {Type: genai.TypeString},
				},
			},
			"skills": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"skillName":       {Type: genai.TypeString},
						"confidenceScore": {Type: genai.TypeNumber},
						"status":          {Type: genai.TypeString, Enum: []string{"Verified", "Needs Review", "Likely Exaggerated"}},
						"reasoning":       {Type: genai.TypeString},
					},
				},
			},
			"certifications": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":         {Type: genai.TypeString},
						"issuer":       {Type: genai.TypeString},
						"issueDate":    {Type: genai.TypeString},
						"credentialId": {Type: genai.TypeString},
						"description":  {Type: genai.TypeString},
					},
				},
			},
		},
	}
}
