package services

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// Services defined in this package:
// - AuthService: admin login and session tokens
// - CityService: supported-cities catalogue
// - ResolutionService: community resolution for event submissions
// - VenueService: venue management and venue resolution
// - EventService: event submission, moderation and listings
// - ArchiveService: archival sweep and the event archive
// - SubscriptionService: city event alert subscriptions
// - CommunityService: community administration and duplicate review
// - LeaderboardService: most-active community and venue rankings
// - AnalyticsService: admin dashboard summary

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
