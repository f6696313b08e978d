package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// Similarity score bands for community resolution. At or above the
// reuse threshold the submission is attached to the existing community;
// between the two thresholds a new community is created and flagged for
// admin review; below the flag threshold it is treated as distinct.
const (
	reuseThreshold = 90
	flagThreshold  = 70
)

const detectionMethodScorer = "similarity_scorer"

// communityResolutionStore is the community access the resolver needs
type communityResolutionStore interface {
	FindSimilar(ctx context.Context, q models.SimilarityQuery) ([]models.SimilarityMatch, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error)
	GetByNameAndCity(ctx context.Context, name string, cityID uuid.UUID, status models.VerificationStatus) (*models.Community, error)
	Create(ctx context.Context, c *models.Community) error
}

// duplicateAuditStore records flagged duplicate candidates
type duplicateAuditStore interface {
	Create(ctx context.Context, d *models.DuplicateCandidate) error
}

// CommunityProfile is the organizer-entered community block of an
// event submission
type CommunityProfile struct {
	Name         string
	Logo         *string
	CityID       uuid.UUID
	Website      *string
	SocialLinks  []string
	Size         *int
	YearFounded  *int
	ContactEmail *string
	ContactPhone *string
}

// ResolutionService decides whether a submitted community profile
// refers to an existing community or a new one
type ResolutionService struct {
	communityStore communityResolutionStore
	duplicateStore duplicateAuditStore
}

// NewResolutionService creates a new resolution service instance
func NewResolutionService(communityStore communityResolutionStore, duplicateStore duplicateAuditStore) *ResolutionService {
	return &ResolutionService{
		communityStore: communityStore,
		duplicateStore: duplicateStore,
	}
}

// Resolve maps a community profile to a community row. A scorer
// failure never fails the submission; resolution falls back to exact
// name matching.
func (s *ResolutionService) Resolve(ctx context.Context, profile CommunityProfile) (*models.Community, error) {
	profile.Name = validation.NormalizeName(profile.Name)

	matches, err := s.communityStore.FindSimilar(ctx, models.SimilarityQuery{
		Name:           profile.Name,
		CityID:         profile.CityID,
		Website:        profile.Website,
		OrganizerEmail: profile.ContactEmail,
		OrganizerPhone: profile.ContactPhone,
		SocialLinks:    profile.SocialLinks,
	})
	if err != nil {
		logger.Warn().Err(err).Str("community", profile.Name).
			Msg("Similarity scorer unavailable, falling back to exact matching")
		return s.resolveByExactName(ctx, profile)
	}

	best := bestMatch(matches)
	if best != nil && best.Score >= reuseThreshold {
		existing, err := s.communityStore.GetByID(ctx, best.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logger.Info().Str("community", existing.Name).Int("score", best.Score).
				Msg("Submission attached to existing community")
			return existing, nil
		}
		// Matched community vanished between scoring and lookup
	}

	community, err := s.createPending(ctx, profile)
	if err != nil {
		return nil, err
	}

	if best != nil && best.Score >= flagThreshold {
		s.flagDuplicate(ctx, best, community)
	}

	return community, nil
}

// resolveByExactName is the scorer-outage path: reuse an approved
// community with the exact name, then a pending one, then create.
func (s *ResolutionService) resolveByExactName(ctx context.Context, profile CommunityProfile) (*models.Community, error) {
	approved, err := s.communityStore.GetByNameAndCity(ctx, profile.Name, profile.CityID, models.VerificationApproved)
	if err != nil {
		return nil, err
	}
	if approved != nil {
		return approved, nil
	}

	pending, err := s.communityStore.GetByNameAndCity(ctx, profile.Name, profile.CityID, models.VerificationPending)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return pending, nil
	}

	return s.createPending(ctx, profile)
}

func (s *ResolutionService) createPending(ctx context.Context, profile CommunityProfile) (*models.Community, error) {
	community := &models.Community{
		Name:               profile.Name,
		Logo:               profile.Logo,
		CityID:             profile.CityID,
		Website:            profile.Website,
		SocialLinks:        profile.SocialLinks,
		Size:               profile.Size,
		YearFounded:        profile.YearFounded,
		ContactEmail:       profile.ContactEmail,
		ContactPhone:       profile.ContactPhone,
		VerificationStatus: models.VerificationPending,
	}

	if err := s.communityStore.Create(ctx, community); err != nil {
		return nil, err
	}

	return community, nil
}

// flagDuplicate writes the admin review audit row. Failures are logged
// and swallowed so the submission itself is never rejected over them.
func (s *ResolutionService) flagDuplicate(ctx context.Context, match *models.SimilarityMatch, created *models.Community) {
	candidate := &models.DuplicateCandidate{
		OriginalCommunityID:    match.ID,
		OriginalCommunityName:  match.Name,
		DuplicateCommunityID:   created.ID,
		DuplicateCommunityName: created.Name,
		SimilarityScore:        match.Score,
		ScoreBreakdown:         match.Breakdown,
		DetectionMethod:        detectionMethodScorer,
		WebsiteMatch:           match.WebsiteMatch,
		OrganizerEmailMatch:    match.EmailMatch,
		OrganizerPhoneMatch:    match.PhoneMatch,
		SocialMediaMatch:       match.SocialMatch,
		CityID:                 created.CityID,
		AdminStatus:            models.DuplicatePending,
	}

	if err := s.duplicateStore.Create(ctx, candidate); err != nil {
		logger.Error().Err(err).
			Str("original", match.Name).Str("duplicate", created.Name).
			Msg("Failed to record duplicate candidate")
		return
	}

	logger.Info().Str("original", match.Name).Str("duplicate", created.Name).
		Int("score", match.Score).Msg("Community flagged for duplicate review")
}

func bestMatch(matches []models.SimilarityMatch) *models.SimilarityMatch {
	var best *models.SimilarityMatch
	for i := range matches {
		if best == nil || matches[i].Score > best.Score {
			best = &matches[i]
		}
	}
	return best
}
