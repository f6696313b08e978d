package models

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown is the per-dimension decomposition of a similarity
// score. Each dimension is 0-100; the weighting that combines them into
// the overall score lives in the database-side scoring function.
type ScoreBreakdown struct {
	NameScore     int `json:"name_score"`
	LocationScore int `json:"location_score"`
	WebsiteScore  int `json:"website_score"`
	ContactScore  int `json:"contact_score"`
	SocialScore   int `json:"social_score"`
}

// SimilarityQuery carries the identifying attributes of a newly
// submitted community, handed to the similarity scorer.
type SimilarityQuery struct {
	Name           string
	CityID         uuid.UUID
	Website        *string
	OrganizerEmail *string
	OrganizerPhone *string
	SocialLinks    []string
}

// SimilarityMatch is one ranked candidate returned by the scorer.
type SimilarityMatch struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Score        int            `json:"similarity_score"`
	Breakdown    ScoreBreakdown `json:"score_breakdown"`
	WebsiteMatch bool           `json:"website_match"`
	EmailMatch   bool           `json:"email_match"`
	PhoneMatch   bool           `json:"phone_match"`
	SocialMatch  bool           `json:"social_match"`
}

// DuplicateCandidate is the audit row written when a submission scores
// in the ambiguous band. It never mutates automatically; an admin
// resolves it through the duplicate review workflow.
type DuplicateCandidate struct {
	ID                     uuid.UUID       `json:"id" db:"id"`
	OriginalCommunityID    uuid.UUID       `json:"originalCommunityId" db:"original_community_id"`
	OriginalCommunityName  string          `json:"originalCommunityName" db:"original_community_name"`
	DuplicateCommunityID   uuid.UUID       `json:"duplicateCommunityId" db:"duplicate_community_id"`
	DuplicateCommunityName string          `json:"duplicateCommunityName" db:"duplicate_community_name"`
	SimilarityScore        int             `json:"similarityScore" db:"similarity_score"`
	ScoreBreakdown         ScoreBreakdown  `json:"scoreBreakdown" db:"score_breakdown"`
	DetectionMethod        string          `json:"detectionMethod" db:"detection_method"`
	WebsiteMatch           bool            `json:"websiteMatch" db:"website_match"`
	OrganizerEmailMatch    bool            `json:"organizerEmailMatch" db:"organizer_email_match"`
	OrganizerPhoneMatch    bool            `json:"organizerPhoneMatch" db:"organizer_phone_match"`
	SocialMediaMatch       bool            `json:"socialMediaMatch" db:"social_media_match"`
	CityID                 uuid.UUID       `json:"cityId" db:"city_id"`
	AdminStatus            DuplicateStatus `json:"adminStatus" db:"admin_status"`
	AdminNotes             string          `json:"adminNotes" db:"admin_notes"`
	ReviewedBy             *string         `json:"reviewedBy,omitempty" db:"reviewed_by"`
	ReviewedAt             *time.Time      `json:"reviewedAt,omitempty" db:"reviewed_at"`
	DetectedAt             time.Time       `json:"detectedAt" db:"detected_at"`
}
