package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type LedgerSkill struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// LedgerRecord is a verified credential as seen by the employer-facing
// lookup: either a seeded demo record or a wallet entry projected into the
// same shape. The Embedding column is only populated when the postgres
// ledger backend is active.
type LedgerRecord struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	NFTID            string          `gorm:"column:nft_id;type:varchar(32);index" json:"nftId"`
	DID              string          `gorm:"column:did;type:varchar(128);index" json:"did"`
	CandidateName    string          `gorm:"type:varchar(255)" json:"candidateName"`
	Role             string          `gorm:"type:varchar(255)" json:"role"`
	VerificationDate string          `gorm:"type:varchar(32)" json:"verificationDate"`
	Confidence       float64         `gorm:"type:float" json:"confidence"`
	Skills           []LedgerSkill   `gorm:"serializer:json;type:jsonb" json:"skills"`
	Embedding        pgvector.Vector `gorm:"type:vector(3072)" json:"-"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (r *LedgerRecord) TableName() string {
	return "ledger_records"
}

// SeedLedgerRecords is the fixed demo corpus the employer lookup always
// includes, alongside whatever the live session has minted.
func SeedLedgerRecords() []LedgerRecord {
	return []LedgerRecord{
		{
			NFTID:            "NFT-8890",
			DID:              SessionDID,
			CandidateName:    "Anil Kumar K R",
			Role:             "Senior Frontend Developer",
			VerificationDate: "2023-10-27",
			Confidence:       96,
			Skills: []LedgerSkill{
				{Name: "React.js", Score: 98},
				{Name: "Blockchain Architecture", Score: 95},
				{Name: "Node.js", Score: 92},
			},
		},
		{
			NFTID:            "NFT-1024",
			DID:              "did:cardano:a1b2c3d4e5f6",
			CandidateName:    "Sarah Jenkins",
			Role:             "Backend Engineer",
			VerificationDate: "2024-01-15",
			Confidence:       94,
			Skills: []LedgerSkill{
				{Name: "Rust", Score: 99},
				{Name: "PostgreSQL", Score: 90},
				{Name: "System Design", Score: 88},
			},
		},
		{
			NFTID:            "NFT-2048",
			DID:              "did:cardano:998877665544",
			CandidateName:    "David Chen",
			Role:             "AI/ML Specialist",
			VerificationDate: "2024-02-10",
			Confidence:       98,
			Skills: []LedgerSkill{
				{Name: "Python", Score: 98},
				{Name: "TensorFlow", Score: 96},
				{Name: "Computer Vision", Score: 92},
			},
		},
	}
}
