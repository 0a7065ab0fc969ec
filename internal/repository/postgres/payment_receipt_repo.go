package postgres

import (
	"context"
	"errors"
	"fmt"

	"chefdhundo-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

// ErrDuplicateReceipt is returned when the gateway repeats a notification
// for an order and status that is already recorded.
var ErrDuplicateReceipt = errors.New("payment receipt already recorded")

type paymentReceiptRepo struct {
	db *pgxpool.Pool
}

func NewPaymentReceiptRepository(db *pgxpool.Pool) domain.PaymentReceiptRepository {
	return &paymentReceiptRepo{db: db}
}

func (r *paymentReceiptRepo) Save(ctx context.Context, receipt *domain.PaymentReceipt) error {
	query := `INSERT INTO payment_receipts (order_id, amount, reference_id, status, message, reported_at, received_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		receipt.OrderID,
		receipt.Amount,
		receipt.ReferenceID,
		receipt.Status,
		receipt.Message,
		receipt.ReportedAt,
		receipt.ReceivedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateReceipt
		}
		return fmt.Errorf("insert payment receipt %s: %w", receipt.OrderID, err)
	}
	return nil
}
