package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CityRepository          *CityRepository
	CommunityRepository     *CommunityRepository
	VenueRepository         *VenueRepository
	EventRepository         *EventRepository
	ArchivedEventRepository *ArchivedEventRepository
	SubscriptionRepository  *SubscriptionRepository
	DuplicateRepository     *DuplicateRepository
	SweepLogRepository      *SweepLogRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CityRepository:          NewCityRepository(db),
		CommunityRepository:     NewCommunityRepository(db),
		VenueRepository:         NewVenueRepository(db),
		EventRepository:         NewEventRepository(db),
		ArchivedEventRepository: NewArchivedEventRepository(db),
		SubscriptionRepository:  NewSubscriptionRepository(db),
		DuplicateRepository:     NewDuplicateRepository(db),
		SweepLogRepository:      NewSweepLogRepository(db),
	}
}
