package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phonomarket/phono/internal/common"
	"github.com/phonomarket/phono/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("901234567", "hash", "Alice", "Smith").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user, err := repo.Create(context.Background(), &models.User{
		Phone: "901234567", PasswordHash: "hash", Name: "Alice", Surname: "Smith",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if user.ID != 7 || !user.IsActive {
		t.Fatalf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestCreate_PhoneTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Phone: "901234567"})
	if !errors.Is(err, common.ErrorPhoneTaken) {
		t.Fatalf("want ErrorPhoneTaken, got %v", err)
	}
}

func TestGetByPhone_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("000000000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByPhone(context.Background(), "000000000")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "phone", "password_hash", "name", "surname", "avatar",
		"balance", "currency_id", "is_active", "dob", "language",
	}).AddRow(int64(3), "901234567", "hash", "Alice", "Smith", nil, int64(0), int64(1), true, nil, "en")

	mock.ExpectQuery("SELECT .+ FROM users").WithArgs(int64(3)).WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if user.Phone != "901234567" || user.Language != "en" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users SET is_active = false").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
