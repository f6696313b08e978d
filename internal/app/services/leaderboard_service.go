package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
)

// leaderboardSize caps both leaderboards
const leaderboardSize = 10

// communityLeaderboardStore ranks communities by lifetime event count
type communityLeaderboardStore interface {
	GetTopByEventCount(ctx context.Context, cityID *uuid.UUID, limit int) ([]models.Community, error)
}

// venueLeaderboardStore ranks venues by lifetime event count
type venueLeaderboardStore interface {
	GetTopByEventCount(ctx context.Context, cityID *uuid.UUID, limit int) ([]models.Venue, error)
}

// LeaderboardService serves the most-active community and venue
// rankings. Only archived events count; the rankings reward events
// actually held, not announced.
type LeaderboardService struct {
	communityStore communityLeaderboardStore
	venueStore     venueLeaderboardStore
}

// NewLeaderboardService creates a new leaderboard service instance
func NewLeaderboardService(communityStore communityLeaderboardStore, venueStore venueLeaderboardStore) *LeaderboardService {
	return &LeaderboardService{
		communityStore: communityStore,
		venueStore:     venueStore,
	}
}

// TopCommunities retrieves the ten most active communities, optionally
// restricted to one city
func (s *LeaderboardService) TopCommunities(ctx context.Context, cityID *uuid.UUID) ([]models.Community, error) {
	return s.communityStore.GetTopByEventCount(ctx, cityID, leaderboardSize)
}

// TopVenues retrieves the ten most active venues, optionally
// restricted to one city
func (s *LeaderboardService) TopVenues(ctx context.Context, cityID *uuid.UUID) ([]models.Venue, error) {
	return s.venueStore.GetTopByEventCount(ctx, cityID, leaderboardSize)
}
