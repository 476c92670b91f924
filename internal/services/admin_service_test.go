package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/pfjetdev/pfgrouptravel/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAdminAuthService(t *testing.T) (*AdminAuthService, *jwt.Service) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtService := jwt.NewService("test-secret-key-that-is-long-enough-123", time.Hour)
	return NewAdminAuthService("Ops@Example.com", string(hash), jwtService), jwtService
}

func TestAdminLogin(t *testing.T) {
	service, jwtService := newAdminAuthService(t)

	resp, err := service.Login(context.Background(), " ops@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "ops@example.com", resp.Email)

	claims, err := jwtService.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleOperator, claims.Role)
}

func TestAdminLogin_InvalidCredentials(t *testing.T) {
	service, _ := newAdminAuthService(t)

	_, err := service.Login(context.Background(), "ops@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(context.Background(), "someone@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLeadService_List(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	store := database.NewRecordStore(&database.PostgresDB{DB: sqlx.NewDb(mockDB, "sqlmock")})
	service := NewLeadService(store)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM multi_city_requests ORDER BY created_at DESC LIMIT $1`)).
		WithArgs(DefaultLeadLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "status", "flights", "passengers", "cabin_class", "full_name", "phone", "email"}).
			AddRow("l1", now, "new", []byte(`[{"from":"JFK","to":"LHR","date":"2025-06-10"}]`), 4, "economy", "A", "5551234567", "a@example.com"))

	list, err := service.List(context.Background(), models.RequestMultiCity, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Count)

	rows, ok := list.Leads.([]models.MultiCityRecord)
	require.True(t, ok)
	assert.Equal(t, models.LeadStatusNew, rows[0].Status)
	assert.Equal(t, "LHR", rows[0].Flights[0].To)

	mock.ExpectQuery(`SELECT \* FROM contact_requests ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(MaxLeadLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	list, err = service.List(context.Background(), models.RequestContact, 10_000)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)

	_, err = service.List(context.Background(), models.RequestType("charter"), 10)
	assert.ErrorIs(t, err, ErrUnknownRequestType)

	assert.NoError(t, mock.ExpectationsWereMet())
}
