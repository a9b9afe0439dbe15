package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	apperrors "github.com/chandrabs25/Andaman-travel-website/pkg/errors"
)

const dateLayout = "2006-01-02"

// GetFerrySchedules returns sailings on a route departing during the given
// calendar day.
func (s *Service) GetFerrySchedules(ctx context.Context, originID, destinationID int64, date string) ([]*entities.FerrySchedule, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}

	query := s.dialect.From(goqu.T("ferry_schedules").As("fs")).Prepared(true).
		Join(goqu.T("ferries").As("f"), goqu.On(goqu.I("fs.ferry_id").Eq(goqu.I("f.id")))).
		Select(
			goqu.I("fs.id"),
			goqu.I("fs.ferry_id"),
			goqu.I("fs.origin_id"),
			goqu.I("fs.destination_id"),
			goqu.I("fs.departure_time"),
			goqu.I("fs.arrival_time"),
			goqu.I("fs.price"),
			goqu.I("fs.capacity"),
			goqu.I("f.name").As("ferry_name"),
		).
		Where(
			goqu.I("fs.origin_id").Eq(originID),
			goqu.I("fs.destination_id").Eq(destinationID),
			goqu.I("fs.departure_time").Gte(day.Format(dateLayout)),
			goqu.I("fs.departure_time").Lt(day.AddDate(0, 0, 1).Format(dateLayout)),
		).
		Order(goqu.I("fs.departure_time").Asc(), goqu.I("fs.id").Asc())

	var schedules []*entities.FerrySchedule
	if err := s.list(ctx, query, &schedules, "ferry schedules"); err != nil {
		return nil, err
	}
	return schedules, nil
}
