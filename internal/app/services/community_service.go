package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/pkg/apperrors"
	"github.com/loopinhq/backend/internal/pkg/logger"
	"github.com/loopinhq/backend/internal/pkg/validation"
)

// communityAdminStore is the community access the admin workflows need
type communityAdminStore interface {
	GetAll(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Community, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Community, error)
	Update(ctx context.Context, c *models.Community) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.VerificationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountLiveEvents(ctx context.Context, id uuid.UUID) (int, error)
	TransferEvents(ctx context.Context, fromID, toID uuid.UUID) (int64, error)
}

// duplicateReviewStore is the duplicate-candidate access the review
// workflow needs
type duplicateReviewStore interface {
	GetAll(ctx context.Context, status *string, page, pageSize int) ([]models.DuplicateCandidate, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.DuplicateCandidate, error)
	Resolve(ctx context.Context, id uuid.UUID, status models.DuplicateStatus, notes, reviewedBy string, reviewedAt time.Time) (bool, error)
}

// CommunityService handles community administration and the duplicate
// review workflow
type CommunityService struct {
	communityStore communityAdminStore
	duplicateStore duplicateReviewStore
}

// NewCommunityService creates a new community service instance
func NewCommunityService(communityStore communityAdminStore, duplicateStore duplicateReviewStore) *CommunityService {
	return &CommunityService{
		communityStore: communityStore,
		duplicateStore: duplicateStore,
	}
}

// GetCommunities retrieves communities with filtering and pagination
func (s *CommunityService) GetCommunities(ctx context.Context, cityID *uuid.UUID, status *string, search *string, page, pageSize int) ([]models.Community, int64, error) {
	return s.communityStore.GetAll(ctx, cityID, status, search, page, pageSize)
}

// GetCommunity retrieves a single community
func (s *CommunityService) GetCommunity(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	community, err := s.communityStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if community == nil {
		return nil, apperrors.ErrCommunityNotFound
	}

	return community, nil
}

// UpdateCommunity applies an admin edit to a community
func (s *CommunityService) UpdateCommunity(ctx context.Context, id uuid.UUID, req *dto.UpdateCommunityRequest) (*models.Community, error) {
	community, err := s.GetCommunity(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		community.Name = validation.NormalizeName(*req.Name)
	}
	if req.Logo != nil {
		community.Logo = req.Logo
	}
	if req.Website != nil {
		community.Website = req.Website
	}
	if req.SocialLinks != nil {
		community.SocialLinks = req.SocialLinks
	}
	if req.Size != nil {
		community.Size = req.Size
	}
	if req.YearFounded != nil {
		community.YearFounded = req.YearFounded
	}
	if req.PreviousEvents != nil {
		community.PreviousEvents = req.PreviousEvents
	}
	if req.ContactEmail != nil {
		if !validation.IsValidEmail(*req.ContactEmail) {
			return nil, apperrors.NewBadRequestError("contact email is invalid")
		}
		community.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		community.ContactPhone = req.ContactPhone
	}

	if err := s.communityStore.Update(ctx, community); err != nil {
		return nil, err
	}

	return community, nil
}

// ApproveCommunity marks a community as verified
func (s *CommunityService) ApproveCommunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return err
	}
	return s.communityStore.UpdateStatus(ctx, id, models.VerificationApproved)
}

// RejectCommunity marks a community as rejected
func (s *CommunityService) RejectCommunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return err
	}
	return s.communityStore.UpdateStatus(ctx, id, models.VerificationRejected)
}

// DeleteCommunity removes a community. Communities still referenced by
// live events cannot be deleted; transfer the events first.
func (s *CommunityService) DeleteCommunity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCommunity(ctx, id); err != nil {
		return err
	}

	liveEvents, err := s.communityStore.CountLiveEvents(ctx, id)
	if err != nil {
		return err
	}
	if liveEvents > 0 {
		return apperrors.ErrCommunityHasEvents
	}

	return s.communityStore.Delete(ctx, id)
}

// TransferEvents moves every live event from one community to another
func (s *CommunityService) TransferEvents(ctx context.Context, fromID, toID uuid.UUID) (int64, error) {
	if fromID == toID {
		return 0, apperrors.ErrTransferSameCommunity
	}

	if _, err := s.GetCommunity(ctx, fromID); err != nil {
		return 0, err
	}
	if _, err := s.GetCommunity(ctx, toID); err != nil {
		return 0, err
	}

	moved, err := s.communityStore.TransferEvents(ctx, fromID, toID)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("moved", moved).Msg("Transferred events between communities")
	return moved, nil
}

// GetDuplicates retrieves duplicate candidates, highest score first
func (s *CommunityService) GetDuplicates(ctx context.Context, status *string, page, pageSize int) ([]models.DuplicateCandidate, int64, error) {
	return s.duplicateStore.GetAll(ctx, status, page, pageSize)
}

// MergeDuplicate resolves a flagged candidate by folding the duplicate
// community into the original: live events move over, the duplicate
// community is deleted, and the verdict is recorded.
func (s *CommunityService) MergeDuplicate(ctx context.Context, id uuid.UUID, notes, reviewedBy string) error {
	candidate, err := s.getPendingDuplicate(ctx, id)
	if err != nil {
		return err
	}

	moved, err := s.communityStore.TransferEvents(ctx, candidate.DuplicateCommunityID, candidate.OriginalCommunityID)
	if err != nil {
		return err
	}

	if err := s.communityStore.Delete(ctx, candidate.DuplicateCommunityID); err != nil {
		return err
	}

	verdict := fmt.Sprintf("Merged into %s, %d events moved.", candidate.OriginalCommunityName, moved)
	if notes != "" {
		verdict = verdict + " " + notes
	}

	return s.resolveDuplicate(ctx, id, models.DuplicateMergeApproved, verdict, reviewedBy)
}

// KeepSeparate resolves a flagged candidate as two distinct communities
func (s *CommunityService) KeepSeparate(ctx context.Context, id uuid.UUID, notes, reviewedBy string) error {
	if _, err := s.getPendingDuplicate(ctx, id); err != nil {
		return err
	}
	return s.resolveDuplicate(ctx, id, models.DuplicateKeepSeparate, notes, reviewedBy)
}

// MarkForInvestigation parks a flagged candidate for later follow-up
func (s *CommunityService) MarkForInvestigation(ctx context.Context, id uuid.UUID, notes, reviewedBy string) error {
	if _, err := s.getPendingDuplicate(ctx, id); err != nil {
		return err
	}
	return s.resolveDuplicate(ctx, id, models.DuplicateInvestigating, notes, reviewedBy)
}

func (s *CommunityService) getPendingDuplicate(ctx context.Context, id uuid.UUID) (*models.DuplicateCandidate, error) {
	candidate, err := s.duplicateStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, apperrors.ErrDuplicateNotFound
	}
	if candidate.AdminStatus != models.DuplicatePending {
		return nil, apperrors.ErrDuplicateAlreadyResolved
	}

	return candidate, nil
}

func (s *CommunityService) resolveDuplicate(ctx context.Context, id uuid.UUID, status models.DuplicateStatus, notes, reviewedBy string) error {
	resolved, err := s.duplicateStore.Resolve(ctx, id, status, notes, reviewedBy, time.Now())
	if err != nil {
		return err
	}
	if !resolved {
		return apperrors.ErrDuplicateAlreadyResolved
	}

	return nil
}
