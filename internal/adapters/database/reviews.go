package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/chandrabs25/Andaman-travel-website/internal/domain/entities"
	"github.com/chandrabs25/Andaman-travel-website/internal/domain/repositories"
)

// CreateReview inserts a review.
func (s *Service) CreateReview(ctx context.Context, input entities.CreateReviewInput) (repositories.WriteResult, error) {
	query := s.dialect.Insert("reviews").Prepared(true).Rows(goqu.Record{
		"user_id":    input.UserID,
		"service_id": input.ServiceID,
		"rating":     input.Rating,
		"comment":    input.Comment,
		"created_at": s.createdAt(input.CreatedAt),
	})
	return s.exec(ctx, query, "review")
}

// GetReviewsByService returns a service's reviews with author names, newest
// first.
func (s *Service) GetReviewsByService(ctx context.Context, serviceID int64) ([]*entities.Review, error) {
	query := s.dialect.From(goqu.T("reviews").As("r")).Prepared(true).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("r.user_id").Eq(goqu.I("u.id")))).
		Select(
			goqu.I("r.id"),
			goqu.I("r.user_id"),
			goqu.I("r.service_id"),
			goqu.I("r.rating"),
			goqu.I("r.comment"),
			goqu.I("r.created_at"),
			goqu.L("TRIM(? || ' ' || ?)", goqu.I("u.first_name"), goqu.I("u.last_name")).As("user_name"),
		).
		Where(goqu.I("r.service_id").Eq(serviceID)).
		Order(goqu.I("r.created_at").Desc(), goqu.I("r.id").Desc())

	var reviews []*entities.Review
	if err := s.list(ctx, query, &reviews, "reviews"); err != nil {
		return nil, err
	}
	return reviews, nil
}
