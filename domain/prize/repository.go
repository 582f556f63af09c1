package prize

import (
	"context"
	"errors"

	"github.com/affhub/meetup-backend/internal/models"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrizeRepository interface {
	// GetPrizes returns the full prize inventory.
	GetPrizes(ctx context.Context) ([]*models.Prize, error)
	// Allocate links a prize to a registrant and decrements its remaining
	// count in a single transaction. Exactly one of the two outcomes is
	// observable: both the decrement and the link, or neither.
	Allocate(ctx context.Context, registrantID, prizeID uint) (*models.Prize, error)
	// SeedPrizes inserts the given prizes if the inventory is empty.
	SeedPrizes(ctx context.Context, prizes []*models.Prize) (int, error)
}

type prizeRepository struct {
	db *gorm.DB
}

func NewPrizeRepository(db *gorm.DB) PrizeRepository {
	return &prizeRepository{db: db}
}

func (r *prizeRepository) GetPrizes(ctx context.Context) ([]*models.Prize, error) {
	var prizes []*models.Prize

	if err := r.db.WithContext(ctx).Order("id").Find(&prizes).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to fetch prizes", err)
	}

	return prizes, nil
}

func (r *prizeRepository) Allocate(ctx context.Context, registrantID, prizeID uint) (*models.Prize, error) {
	var awarded *models.Prize

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the registrant row first so two spins for the same user
		// serialize here (FOR UPDATE on PostgreSQL, no-op on SQLite where the
		// conditional updates below still guarantee correctness).
		var registrant models.Registrant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&registrant, registrantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewRegistrantNotFoundError()
			}
			return apperrors.NewDatabaseError("failed to lock registrant", err)
		}

		if registrant.PrizeID != nil {
			return NewAlreadyAwardedError()
		}

		var p models.Prize
		if err := tx.First(&p, prizeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewPrizeNotFoundError()
			}
			return apperrors.NewDatabaseError("failed to fetch prize", err)
		}

		// Conditional decrement: zero rows affected means another allocation
		// consumed the last unit between our read and this update.
		res := tx.Model(&models.Prize{}).
			Where("id = ? AND amount > 0", prizeID).
			UpdateColumn("amount", gorm.Expr("amount - 1"))
		if res.Error != nil {
			return apperrors.NewDatabaseError("failed to decrement prize amount", res.Error)
		}
		if res.RowsAffected == 0 {
			return NewPrizeUnavailableError()
		}

		// The prize link is guarded the same way: the registrant row lock may
		// be a no-op on SQLite, so only set prize_id while it is still NULL.
		res = tx.Model(&models.Registrant{}).
			Where("id = ? AND prize_id IS NULL", registrantID).
			Update("prize_id", prizeID)
		if res.Error != nil {
			return apperrors.NewDatabaseError("failed to link prize to registrant", res.Error)
		}
		if res.RowsAffected == 0 {
			return NewAlreadyAwardedError()
		}

		p.Amount--
		awarded = &p
		return nil
	})

	if err != nil {
		return nil, err
	}
	return awarded, nil
}

func (r *prizeRepository) SeedPrizes(ctx context.Context, prizes []*models.Prize) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Prize{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count prizes", err)
	}

	if count > 0 {
		return 0, nil
	}

	if err := r.db.WithContext(ctx).Create(prizes).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to seed prizes", err)
	}

	return len(prizes), nil
}
