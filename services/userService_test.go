package services_test

import (
	"context"
	"testing"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserNormalizes(t *testing.T) {
	f := newFixture(t)

	user, err := f.users.Create(context.Background(), models.SignupData{
		Email: "  Lee@Example.COM ", Name: " Lee ", Password: "secret1", Role: models.RoleAdmin, Address: " Busan ",
	}, false)

	require.NoError(t, err)
	assert.Equal(t, "lee@example.com", user.Email)
	assert.Equal(t, "Lee", user.Name)
	assert.Equal(t, "Busan", user.Address)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "secret1", user.Password)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := map[string]models.SignupData{
		"missing name":   {Email: "a@b.co", Password: "secret1"},
		"bad email":      {Email: "not-an-email", Name: "A", Password: "secret1"},
		"short password": {Email: "a@b.co", Name: "A", Password: "12345"},
		"duplicate":      {Email: "KIM@example.com", Name: "Kim", Password: "secret1"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.users.Create(ctx, input, false)
			requireKind(t, err, apperrors.KindValidation)
		})
	}

	_, err := f.users.Create(ctx, models.SignupData{Email: "x@y.co", Name: "X", Password: "secret1", Role: "owner"}, true)
	requireKind(t, err, apperrors.KindValidation)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Authenticate(ctx, models.LoginData{Email: " KIM@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, user.ID)

	_, err = f.users.Authenticate(ctx, models.LoginData{Email: "kim@example.com", Password: "wrong-pass"})
	requireKind(t, err, apperrors.KindUnauthorized)

	_, err = f.users.Authenticate(ctx, models.LoginData{Email: "nobody@example.com", Password: "secret1"})
	requireKind(t, err, apperrors.KindUnauthorized)
}

func TestUpdateUserPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	name := "Kim Minji"
	admin := models.RoleAdmin

	user, err := f.users.Update(ctx, f.session(f.customer), f.customer.ID, models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Kim Minji", user.Name)

	_, err = f.users.Update(ctx, f.session(f.customer), f.customer.ID, models.UserUpdate{Role: &admin})
	requireKind(t, err, apperrors.KindForbidden)

	_, err = f.users.Update(ctx, f.session(f.customer), f.admin.ID, models.UserUpdate{Name: &name})
	requireKind(t, err, apperrors.KindForbidden)

	user, err = f.users.Update(ctx, f.session(f.admin), f.customer.ID, models.UserUpdate{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUpdateUserPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	short, long := "123", "new-secret"

	_, err := f.users.Update(ctx, f.session(f.customer), f.customer.ID, models.UserUpdate{Password: &short})
	requireKind(t, err, apperrors.KindValidation)

	_, err = f.users.Update(ctx, f.session(f.customer), f.customer.ID, models.UserUpdate{Password: &long})
	require.NoError(t, err)
	_, err = f.users.Authenticate(ctx, models.LoginData{Email: "kim@example.com", Password: "new-secret"})
	assert.NoError(t, err)
}

func TestGetByEmailAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.GetByEmail(ctx, "Kim@Example.com")
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, user.ID)

	require.NoError(t, f.users.Delete(ctx, f.customer.ID))
	_, err = f.users.Get(ctx, f.customer.ID)
	requireKind(t, err, apperrors.KindNotFound)
	requireKind(t, f.users.Delete(ctx, f.customer.ID), apperrors.KindNotFound)

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
