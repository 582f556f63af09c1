package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/affhub/meetup-backend/internal/models"
	apperrors "github.com/affhub/meetup-backend/pkg/errors"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	// FindOrCreate returns the registrant matching any of the supplied
	// identity fields, creating one when no match exists. The bool reports
	// whether a new record was created. Concurrent submissions with the same
	// identity key resolve through the unique indexes: the losing insert
	// falls back to fetching the winner's row.
	FindOrCreate(ctx context.Context, registrant *models.Registrant) (*models.Registrant, bool, error)

	// FindByID fetches a registrant by primary key.
	FindByID(ctx context.Context, id uint) (*models.Registrant, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) FindOrCreate(ctx context.Context, registrant *models.Registrant) (*models.Registrant, bool, error) {
	existing, err := r.findByIdentity(ctx, registrant)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := r.db.WithContext(ctx).Create(registrant).Error; err != nil {
		if isDuplicateKey(err) {
			// Lost the insert race; the winner's row is what we want.
			winner, findErr := r.findByIdentity(ctx, registrant)
			if findErr != nil {
				return nil, false, findErr
			}
			if winner != nil {
				return winner, false, nil
			}
		}
		return nil, false, apperrors.NewDatabaseError("unable to create registrant", err)
	}

	return registrant, true, nil
}

func (r *registrationRepository) FindByID(ctx context.Context, id uint) (*models.Registrant, error) {
	var registrant models.Registrant

	if err := r.db.WithContext(ctx).First(&registrant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("registrant not found", err)
		}
		return nil, apperrors.NewDatabaseError("failed to fetch registrant", err)
	}

	return &registrant, nil
}

// findByIdentity matches on any supplied identity field. Returns (nil, nil)
// when nothing matches.
func (r *registrationRepository) findByIdentity(ctx context.Context, registrant *models.Registrant) (*models.Registrant, error) {
	conds := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if registrant.Email != nil {
		conds = append(conds, "email = ?")
		args = append(args, *registrant.Email)
	}
	if registrant.Phone != nil {
		conds = append(conds, "phone = ?")
		args = append(args, *registrant.Phone)
	}
	if registrant.Telegram != nil {
		conds = append(conds, "telegram = ?")
		args = append(args, *registrant.Telegram)
	}

	if len(conds) == 0 {
		return nil, apperrors.NewInvalidRequestError("at least one identity field is required", nil)
	}

	var existing models.Registrant
	err := r.db.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewDatabaseError("failed to look up registrant", err)
	}

	return &existing, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
