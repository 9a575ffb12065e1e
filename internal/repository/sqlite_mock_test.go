package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Repository{db: db}, mock
}

func TestGetSetting_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT value FROM settings").WithArgs("api_url").WillReturnError(errors.New("disk I/O error"))

	if _, err := repo.GetSetting(context.Background(), "api_url"); err == nil || err == ErrNotFound {
		t.Errorf("expected database error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestAllSettings_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"key"}).AddRow("only-one-column")
	mock.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

	if _, err := repo.AllSettings(context.Background()); err == nil {
		t.Error("expected scan error")
	}
}

func TestAllSettings_RowError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("judge_id", "4").
		RowError(0, errors.New("row failure"))
	mock.ExpectQuery("SELECT key, value FROM settings").WillReturnRows(rows)

	if _, err := repo.AllSettings(context.Background()); err == nil {
		t.Error("expected row error")
	}
}

func TestRecordApproval_ExecError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO payment_approvals").WillReturnError(errors.New("database is locked"))

	if err := repo.RecordApproval(context.Background(), 11, "Ada"); err == nil {
		t.Error("expected exec error")
	}
}

func TestListApprovals_ScanError(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"participant_id", "name", "approved_at"}).
		AddRow("not-a-number", "Ada", "yesterday")
	mock.ExpectQuery("SELECT (.+) FROM payment_approvals").WillReturnRows(rows)

	if _, err := repo.ListApprovals(context.Background(), 5); err == nil {
		t.Error("expected scan error")
	}
}

func TestListApprovals_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM payment_approvals").WithArgs(50).WillReturnError(errors.New("no such table"))

	if _, err := repo.ListApprovals(context.Background(), 0); err == nil {
		t.Error("expected query error")
	}
}
