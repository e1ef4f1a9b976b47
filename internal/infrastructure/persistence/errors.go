package persistence

import (
	"errors"

	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors to domain errors. Databases are opened
// with TranslateError so driver-specific constraint errors arrive as
// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.ErrInUse
	default:
		return err
	}
}

// deleted turns a zero-row delete into ErrNotFound
func deleted(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
