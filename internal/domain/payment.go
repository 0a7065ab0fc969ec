package domain

import (
	"context"
	"time"
)

// Transaction statuses reported by the gateway notification.
const (
	TxSuccess = "SUCCESS"
	TxFailed  = "FAILED"
	TxPending = "PENDING"
)

// OrderRequest asks for a hosted checkout session for a plan upgrade.
type OrderRequest struct {
	Amount   float64 `json:"amount" binding:"required"`
	PlanName string  `json:"planName" binding:"required"`
	PlanID   string  `json:"planId"`
}

type Order struct {
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
}

// PaymentNotification is the asynchronous server-to-server callback.
type PaymentNotification struct {
	OrderID     string  `json:"orderId"`
	OrderAmount float64 `json:"orderAmount"`
	ReferenceID string  `json:"referenceId"`
	TxStatus    string  `json:"txStatus"`
	TxMsg       string  `json:"txMsg"`
	TxTime      string  `json:"txTime"`
}

// PaymentReceipt is the audit row written for each notification. It records
// that a notification arrived and nothing more; no entitlement is derived.
type PaymentReceipt struct {
	OrderID     string
	Amount      float64
	ReferenceID string
	Status      string
	Message     string
	ReportedAt  string
	ReceivedAt  time.Time
}

type PaymentReceiptRepository interface {
	Save(ctx context.Context, receipt *PaymentReceipt) error
}
