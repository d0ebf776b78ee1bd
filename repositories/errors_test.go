package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, msgUserNotFound))

	err := translate(fmt.Errorf("query: %w", gorm.ErrRecordNotFound), msgUserNotFound)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, msgUserNotFound, err.Error())

	err = translate(gorm.ErrDuplicatedKey, msgUserNotFound)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))

	forbidden := apperrors.Forbidden("nope")
	assert.Same(t, forbidden, translate(forbidden, msgUserNotFound))

	err = translate(errors.New("connection refused"), msgUserNotFound)
	assert.Equal(t, apperrors.KindInternal, apperrors.KindOf(err))
}
