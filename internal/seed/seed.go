package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/loopinhq/backend/internal/app/models"
	appRepos "github.com/loopinhq/backend/internal/app/repositories"
	"github.com/loopinhq/backend/internal/pkg/dberrors"
)

// defaultCities are the launch cities. Additional cities are created
// through the admin API.
var defaultCities = []appModels.City{
	{Name: "Bengaluru", State: "Karnataka"},
	{Name: "Hyderabad", State: "Telangana"},
	{Name: "Mumbai", State: "Maharashtra"},
	{Name: "Pune", State: "Maharashtra"},
	{Name: "Delhi", State: "Delhi"},
	{Name: "Gurugram", State: "Haryana"},
	{Name: "Noida", State: "Uttar Pradesh"},
	{Name: "Chennai", State: "Tamil Nadu"},
	{Name: "Kolkata", State: "West Bengal"},
	{Name: "Ahmedabad", State: "Gujarat"},
	{Name: "Jaipur", State: "Rajasthan"},
	{Name: "Kochi", State: "Kerala"},
	{Name: "Indore", State: "Madhya Pradesh"},
	{Name: "Chandigarh", State: "Chandigarh"},
	{Name: "Bhubaneswar", State: "Odisha"},
}

// CreateDefaultData creates the launch cities if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	cityRepo := appRepos.NewCityRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default cities...")
	var finalErr error

	created := 0
	for i := range defaultCities {
		city := defaultCities[i]
		if err := cityRepo.Create(ctx, &city); err != nil {
			if dberrors.IsUniqueViolation(err) {
				continue
			}
			lgr.Error().Err(err).Str("city", city.Name).Msg("Error creating default city")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		created++
	}

	if created > 0 {
		lgr.Info().Int("created", created).Msg("Default cities created")
	}
	return finalErr
}
