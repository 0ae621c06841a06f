package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
	"github.com/raisul516/ironi-backend/pkg/types"
)

var testDBSeq int

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:userstest%d?mode=memory&cache=shared", testDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(&models.User{}))
	return conn
}

func sampleCreate(email, phone string) CreateUserDTO {
	return CreateUserDTO{
		Name:         "Rahim Uddin",
		Email:        email,
		Phone:        phone,
		PasswordHash: "argon2id$hash",
		Address: types.Address{
			Street:     "12 Mirpur Road",
			City:       "Dhaka",
			PostalCode: "1216",
		},
	}
}

func TestCreateAndFind(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleCreate("rahim@example.com", "01712340201"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, enums.UserRoleCustomer, created.Role)

	byEmail, err := repo.FindByEmail(ctx, "rahim@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byPhone, err := repo.FindByPhone(ctx, "01712340201")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byPhone.ID)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", byID.Address.City)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleCreate("dup@example.com", "01712340211"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleCreate("dup@example.com", "01712340212"))
	require.Error(t, err)
}

func TestUpdateProfileRewritesAddressColumns(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, sampleCreate("move@example.com", "01712340221"))
	require.NoError(t, err)

	err = repo.UpdateProfile(ctx, created.ID, "Rahim U.", "01912340221", types.Address{
		Street:     "4 Agrabad Access Road",
		City:       "Chattogram",
		PostalCode: "4100",
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rahim U.", reloaded.Name)
	assert.Equal(t, "01912340221", reloaded.Phone)
	assert.Equal(t, "Chattogram", reloaded.Address.City)
	assert.Equal(t, "4100", reloaded.Address.PostalCode)
}

func TestListDeleteCount(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleCreate("a@example.com", "01712340231"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, sampleCreate("b@example.com", "01712340232"))
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	affected, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
