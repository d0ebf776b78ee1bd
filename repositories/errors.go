package repositories

import (
	"errors"

	"github.com/shopping-mall/mall-api/apperrors"
	"gorm.io/gorm"
)

// translate converts gorm errors into application errors. Duplicate keys
// become conflicts; callers decide what a conflict means for their record.
func translate(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperrors.Error{Kind: apperrors.KindConflict, Message: "duplicate record", Err: err}
	default:
		if _, ok := apperrors.As(err); ok {
			return err
		}
		return apperrors.Internal("database error", err)
	}
}
