package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Insert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+invoices`

	inv := &models.Invoice{
		ID:          "i1",
		ProjectID:   "p1",
		Number:      "INV-202402-0001",
		Date:        time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		DueDate:     time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC),
		Items:       []models.InvoiceItem{{Description: "work", Quantity: 1, UnitPrice: 100}},
		TotalAmount: 100,
		Status:      models.InvoiceStatusIssued,
		Currency:    "EUR",
	}
	items, _ := json.Marshal(inv.Items)

	mock.ExpectExec(q).
		WithArgs(inv.ID, inv.ProjectID, inv.Number, inv.Date, inv.DueDate, items,
			inv.TotalAmount, inv.Status, inv.Currency, sql.NullString{}).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), inv); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+.*FROM\s+invoices\s+WHERE`).
		WithArgs("p1", "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "p1", "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	items, _ := json.Marshal([]models.InvoiceItem{{Description: "work", Quantity: 1, UnitPrice: 100}})
	rows := sqlmock.NewRows([]string{
		"id", "project_id", "number", "date", "due_date", "items",
		"total_amount", "paid_amount", "paid_date", "status", "currency", "recurring_ref",
	}).AddRow("i1", "p1", "INV-202402-0001",
		time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 19, 0, 0, 0, 0, time.UTC),
		items, int64(100), nil, nil, "issued", "EUR", nil)

	mock.ExpectQuery(`(?s)^\s*SELECT\s+.*FROM\s+invoices\s+WHERE`).
		WithArgs("p1", "i1").
		WillReturnRows(rows)

	inv, err := repo.GetByID(context.Background(), "p1", "i1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if inv.Number != "INV-202402-0001" || inv.Status != models.InvoiceStatusIssued {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if len(inv.Items) != 1 || inv.Items[0].UnitPrice != 100 {
		t.Fatalf("items not decoded: %+v", inv.Items)
	}
}

func TestMarkPaid_GuardedByStatus(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	paidDate := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)^\s*UPDATE\s+invoices\s+SET\s+status.*WHERE.*status\s*=`).
		WithArgs(models.InvoiceStatusPaid, int64(100), paidDate, "p1", "i1", models.InvoiceStatusIssued).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkPaid(context.Background(), "p1", "i1", 100, paidDate)
	if err != nil {
		t.Fatalf("MarkPaid error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row affected, got %d", n)
	}
}

func TestMarkPaid_ZeroRowsWhenNotIssued(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	paidDate := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`(?s)^\s*UPDATE\s+invoices\s+SET\s+status`).
		WithArgs(models.InvoiceStatusPaid, int64(100), paidDate, "p1", "i1", models.InvoiceStatusIssued).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.MarkPaid(context.Background(), "p1", "i1", 100, paidDate)
	if err != nil {
		t.Fatalf("MarkPaid error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 rows affected, got %d", n)
	}
}

func TestNextNumber_Upsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"last"}).AddRow(7)
	mock.ExpectQuery(`(?s)^\s*INSERT\s+INTO\s+invoice_numbers.*ON\s+CONFLICT.*RETURNING\s+last`).
		WithArgs("202402").
		WillReturnRows(rows)

	n, err := repo.NextNumber(context.Background(), "202402")
	if err != nil {
		t.Fatalf("NextNumber error: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7, got %d", n)
	}
}
