package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/loopinhq/backend/internal/app/models"
	"github.com/loopinhq/backend/internal/app/models/dto"
	"github.com/loopinhq/backend/internal/app/repositories"
)

// analyticsEventStore is the event access the dashboard needs
type analyticsEventStore interface {
	CountByStatus(ctx context.Context) (map[models.EventStatus]int, error)
	CountByCity(ctx context.Context) (map[uuid.UUID]int, error)
	CountByType(ctx context.Context) (map[models.EventType]int, error)
	SumRegistrationClicks(ctx context.Context) (int, error)
	SumClicksByCity(ctx context.Context) (map[uuid.UUID]int, error)
	SumClicksByMonth(ctx context.Context) ([]repositories.MonthlyClickTally, error)
	SumClicksByCommunity(ctx context.Context) ([]repositories.CommunityClickTally, error)
}

// analyticsArchiveStore counts archived events
type analyticsArchiveStore interface {
	Count(ctx context.Context) (int, error)
}

// analyticsCommunityStore counts communities
type analyticsCommunityStore interface {
	CountByStatus(ctx context.Context) (map[models.VerificationStatus]int, error)
}

// analyticsVenueStore counts venues
type analyticsVenueStore interface {
	Count(ctx context.Context) (int, error)
}

// analyticsSubscriptionStore counts subscribers
type analyticsSubscriptionStore interface {
	CountActive(ctx context.Context) (int, error)
}

// analyticsCityStore names cities for the per-city breakdown
type analyticsCityStore interface {
	GetAll(ctx context.Context) ([]models.City, error)
}

// AnalyticsService assembles the admin dashboard summary.
// GrowthRate and ConversionRate are placeholders kept at zero until a
// measurement window for them is defined.
type AnalyticsService struct {
	eventStore        analyticsEventStore
	archiveStore      analyticsArchiveStore
	communityStore    analyticsCommunityStore
	venueStore        analyticsVenueStore
	subscriptionStore analyticsSubscriptionStore
	cityStore         analyticsCityStore
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService(eventStore analyticsEventStore, archiveStore analyticsArchiveStore, communityStore analyticsCommunityStore, venueStore analyticsVenueStore, subscriptionStore analyticsSubscriptionStore, cityStore analyticsCityStore) *AnalyticsService {
	return &AnalyticsService{
		eventStore:        eventStore,
		archiveStore:      archiveStore,
		communityStore:    communityStore,
		venueStore:        venueStore,
		subscriptionStore: subscriptionStore,
		cityStore:         cityStore,
	}
}

// GetSummary builds the dashboard numbers
func (s *AnalyticsService) GetSummary(ctx context.Context) (*dto.AnalyticsResponse, error) {
	eventCounts, err := s.eventStore.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	archivedCount, err := s.archiveStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	communityCounts, err := s.communityStore.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	venueCount, err := s.venueStore.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeSubscriptions, err := s.subscriptionStore.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	clicks, err := s.eventStore.SumRegistrationClicks(ctx)
	if err != nil {
		return nil, err
	}

	byCity, err := s.eventsByCity(ctx)
	if err != nil {
		return nil, err
	}

	byType, err := s.eventsByType(ctx)
	if err != nil {
		return nil, err
	}

	totalLive := 0
	for _, count := range eventCounts {
		totalLive += count
	}

	totalCommunities := 0
	for _, count := range communityCounts {
		totalCommunities += count
	}

	return &dto.AnalyticsResponse{
		TotalEvents:         totalLive + archivedCount,
		PendingEvents:       eventCounts[models.EventPending],
		ApprovedEvents:      eventCounts[models.EventApproved],
		ArchivedEvents:      archivedCount,
		TotalCommunities:    totalCommunities,
		PendingCommunities:  communityCounts[models.VerificationPending],
		TotalVenues:         venueCount,
		ActiveSubscriptions: activeSubscriptions,
		RegistrationClicks:  clicks,
		EventsByCity:        byCity,
		EventsByType:        byType,
	}, nil
}

// GetClickAnalytics breaks registration clicks down by city, month and
// community across live and archived events
func (s *AnalyticsService) GetClickAnalytics(ctx context.Context) (*dto.ClickAnalyticsResponse, error) {
	total, err := s.eventStore.SumRegistrationClicks(ctx)
	if err != nil {
		return nil, err
	}

	cityClicks, err := s.eventStore.SumClicksByCity(ctx)
	if err != nil {
		return nil, err
	}

	cities, err := s.cityStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byCity := make([]dto.CityClickCount, 0, len(cityClicks))
	for _, city := range cities {
		if clicks, ok := cityClicks[city.ID]; ok {
			byCity = append(byCity, dto.CityClickCount{
				CityID:   city.ID,
				CityName: city.Name,
				Clicks:   clicks,
			})
		}
	}
	sort.Slice(byCity, func(i, j int) bool { return byCity[i].Clicks > byCity[j].Clicks })

	monthTallies, err := s.eventStore.SumClicksByMonth(ctx)
	if err != nil {
		return nil, err
	}

	byMonth := make([]dto.MonthlyClickCount, 0, len(monthTallies))
	for _, t := range monthTallies {
		byMonth = append(byMonth, dto.MonthlyClickCount{Month: t.Month, Clicks: t.Clicks})
	}

	communityTallies, err := s.eventStore.SumClicksByCommunity(ctx)
	if err != nil {
		return nil, err
	}

	byCommunity := make([]dto.CommunityClickCount, 0, len(communityTallies))
	for _, t := range communityTallies {
		byCommunity = append(byCommunity, dto.CommunityClickCount{
			CommunityID:   t.CommunityID,
			CommunityName: t.CommunityName,
			Clicks:        t.Clicks,
		})
	}

	return &dto.ClickAnalyticsResponse{
		TotalClicks: total,
		ByCity:      byCity,
		ByMonth:     byMonth,
		ByCommunity: byCommunity,
	}, nil
}

func (s *AnalyticsService) eventsByCity(ctx context.Context) ([]dto.CityEventCount, error) {
	counts, err := s.eventStore.CountByCity(ctx)
	if err != nil {
		return nil, err
	}

	cities, err := s.cityStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	byCity := make([]dto.CityEventCount, 0, len(counts))
	for _, city := range cities {
		if count, ok := counts[city.ID]; ok {
			byCity = append(byCity, dto.CityEventCount{
				CityID:   city.ID,
				CityName: city.Name,
				Count:    count,
			})
		}
	}

	sort.Slice(byCity, func(i, j int) bool { return byCity[i].Count > byCity[j].Count })
	return byCity, nil
}

func (s *AnalyticsService) eventsByType(ctx context.Context) ([]dto.EventTypeCount, error) {
	counts, err := s.eventStore.CountByType(ctx)
	if err != nil {
		return nil, err
	}

	byType := make([]dto.EventTypeCount, 0, len(counts))
	for eventType, count := range counts {
		byType = append(byType, dto.EventTypeCount{
			EventType: string(eventType),
			Count:     count,
		})
	}

	sort.Slice(byType, func(i, j int) bool { return byType[i].Count > byType[j].Count })
	return byType, nil
}
