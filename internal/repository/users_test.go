package repository

import (
	"context"
	"regexp"
	"testing"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestUsers_PatientsGetMedicalRecordNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1, err := f.users.Create(ctx, NewUser{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"})
	require.NoError(t, err)
	doc, err := f.users.Create(ctx, NewUser{Name: "Dr. Bo", Email: "bo@example.com", Role: models.RoleDoctor, PasswordHash: "x"})
	require.NoError(t, err)
	p2, err := f.users.Create(ctx, NewUser{Name: "Cy", Email: "cy@example.com", Role: models.RolePatient, PasswordHash: "x"})
	require.NoError(t, err)

	assert.Equal(t, models.RolePatient, p1.Role)
	assert.Equal(t, "MR000001", *p1.MedicalRecordNumber)
	assert.Nil(t, doc.MedicalRecordNumber)
	assert.Equal(t, "MR000002", *p2.MedicalRecordNumber)
	assert.NotEqual(t, p1.ID, p2.ID)
}

func TestUsers_RejectsDuplicateEmailAndBadRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, NewUser{Name: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = f.users.Create(ctx, NewUser{Name: "Ann Again", Email: "ann@example.com"})
	require.Error(t, err)
	assert.Equal(t, "email already registered", err.Error())

	_, err = f.users.Create(ctx, NewUser{Name: "Eve", Email: "eve@example.com", Role: "nurse"})
	assert.True(t, apperr.IsValidation(err))
}

func TestUsers_LookupUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.users.Create(ctx, NewUser{Name: "Ann", Email: "ann@example.com", Phone: "1"})
	require.NoError(t, err)

	byEmail, err := f.users.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = f.users.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, apperr.IsNotFound(err))

	role := models.RoleAdmin
	u, err = f.users.Update(ctx, u.ID, models.UserUpdate{Phone: strPtr("2"), Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "2", u.Phone)
	assert.Equal(t, models.RoleAdmin, u.Role)

	bad := models.UserRole("nurse")
	_, err = f.users.Update(ctx, u.ID, models.UserUpdate{Role: &bad})
	assert.True(t, apperr.IsValidation(err))

	admins, err := f.users.List(ctx, &role)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	require.NoError(t, f.users.Delete(ctx, u.ID))
	_, err = f.users.Get(ctx, u.ID)
	assert.True(t, apperr.IsNotFound(err))
}

// A registration that passes the email check but loses the insert to a
// concurrent one for the same address hits the unique index.
func TestUsers_UniqueViolationIsDuplicateEmail(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			Message:        `duplicate key value violates unique constraint "idx_users_email"`,
			ConstraintName: "idx_users_email",
		})
	mock.ExpectRollback()

	_, err = NewUsers(db).Create(context.Background(), NewUser{Name: "Ann", Email: "ann@example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "email already registered", err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
