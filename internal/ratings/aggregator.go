package ratings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/platefinder/platefinder-backend/pkg/db/models"
)

// Aggregator recomputes a restaurant's derived rating columns from its
// reviews. It must run inside the same transaction as the review write so
// the listing never exposes a stale aggregate.
type Aggregator struct{}

// NewAggregator constructs the aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Recompute recalculates avg_rating and review_count for the restaurant
// from scratch and writes both columns. An empty review set resets the
// aggregate to 0.0 / 0.
func (a *Aggregator) Recompute(ctx context.Context, tx *gorm.DB, restaurantID uuid.UUID) error {
	if restaurantID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	// Serialize concurrent recomputes for the same restaurant. SQLite
	// (used in tests) locks the whole database per write transaction, so
	// the row lock only applies on postgres.
	target := tx.WithContext(ctx).Model(&models.Restaurant{})
	if tx.Dialector.Name() == "postgres" {
		if err := tx.WithContext(ctx).
			Exec("SELECT id FROM restaurants WHERE id = ? FOR UPDATE", restaurantID).
			Error; err != nil {
			return err
		}
	}

	var row struct {
		Count int64
		Sum   int64
	}
	if err := tx.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("restaurant_id = ?", restaurantID).
		Scan(&row).
		Error; err != nil {
		return err
	}

	avg := 0.0
	if row.Count > 0 {
		avg = decimal.NewFromInt(row.Sum).
			Div(decimal.NewFromInt(row.Count)).
			RoundBank(2).
			InexactFloat64()
	}

	return target.
		Where("id = ?", restaurantID).
		Updates(map[string]any{
			"avg_rating":   avg,
			"review_count": row.Count,
		}).
		Error
}
