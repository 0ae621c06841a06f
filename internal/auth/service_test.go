package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgAuth "github.com/raisul516/ironi-backend/pkg/auth"
	"github.com/raisul516/ironi-backend/pkg/config"
	"github.com/raisul516/ironi-backend/pkg/db"
	"github.com/raisul516/ironi-backend/pkg/db/models"
	"github.com/raisul516/ironi-backend/pkg/enums"
	pkgerrors "github.com/raisul516/ironi-backend/pkg/errors"
	"github.com/raisul516/ironi-backend/pkg/types"
)

var testDBSeq int

func setupAuthTestDB(t *testing.T) *db.Client {
	t.Helper()

	testDBSeq++
	dsn := fmt.Sprintf("file:authtest%d?mode=memory&cache=shared", testDBSeq)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(&models.User{}))

	return db.FromConn(conn)
}

func testConfigs() (config.PasswordConfig, config.JWTConfig) {
	passwordCfg := config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	jwtCfg := config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "ironi-test",
		ExpirationMinutes: 60,
	}
	return passwordCfg, jwtCfg
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	client := setupAuthTestDB(t)
	passwordCfg, jwtCfg := testConfigs()
	svc, err := NewService(ServiceParams{
		DB:             client,
		PasswordConfig: passwordCfg,
		JWTConfig:      jwtCfg,
	})
	require.NoError(t, err)
	return svc, client
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Name:     "Rahim Uddin",
		Email:    "Rahim@Example.com",
		Password: "sup3rsecret",
		Phone:    "01712345678",
		Address: types.Address{
			Street:     "12 Lake Road",
			City:       "Dhaka",
			PostalCode: "1207",
		},
	}
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.Equal(t, "rahim@example.com", resp.User.Email)
	assert.Equal(t, enums.UserRoleCustomer, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.AccessToken)

	_, jwtCfg := testConfigs()
	claims, err := pkgAuth.ParseAccessToken(jwtCfg, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleCustomer, claims.Role)

	var stored models.User
	require.NoError(t, client.DB().First(&stored, "email = ?", "rahim@example.com").Error)
	assert.NotEqual(t, "sup3rsecret", stored.PasswordHash)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Phone = "01898765432"
	_, err = svc.Register(ctx, dup)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestRegisterRejectsDuplicatePhone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestLoginSucceedsWithMixedCaseEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "RAHIM@example.com", Password: "sup3rsecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "rahim@example.com", Password: "wrong"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLoginRejectsUnknownUserWithSameError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	assert.Equal(t, invalidCredentialsMessage, appErr.Message())
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, client.DB().
		Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		UpdateColumn("is_active", false).Error)

	_, err = svc.Login(ctx, LoginRequest{Email: "rahim@example.com", Password: "sup3rsecret"})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestUpdateProfileChangesFieldsAndKeepsEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, resp.User.ID, UpdateProfileRequest{
		Name:  "Rahim U.",
		Phone: "01512345678",
		Address: types.Address{
			Street:     "7 Green Road",
			City:       "Chattogram",
			PostalCode: "4000",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Rahim U.", updated.Name)
	assert.Equal(t, "01512345678", updated.Phone)
	assert.Equal(t, "Chattogram", updated.Address.City)
	assert.Equal(t, "rahim@example.com", updated.Email)
}

func TestUpdateProfileRejectsTakenPhone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	second := registerRequest()
	second.Email = "karim@example.com"
	second.Phone = "01898765432"
	secondResp, err := svc.Register(ctx, second)
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, secondResp.User.ID, UpdateProfileRequest{
		Name:    "Karim",
		Phone:   first.User.Phone,
		Address: second.Address,
	})
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestProfileReturnsNotFoundForUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Profile(ctx, uuid.New())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
