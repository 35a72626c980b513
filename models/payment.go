package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	PaymentMethodCreditCard     = "credit_card"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodEWallet        = "e_wallet"
	PaymentMethodVirtualAccount = "virtual_account"
	PaymentMethodCash           = "cash"
)

// Payment is 1:1 with its booking; the unique index on booking_id backs
// the one-payment-per-booking rule.
type Payment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	BookingID      uint           `gorm:"column:booking_id;uniqueIndex;not null" json:"booking_id"`
	PaymentMethod  string         `gorm:"column:payment_method;size:32" json:"payment_method"`
	Amount         float64        `gorm:"type:decimal(10,2)" json:"amount"`
	Status         string         `gorm:"size:32;default:pending;index" json:"status"`
	StatusLabel    string         `gorm:"-" json:"status_label,omitempty"`
	MethodLabel    string         `gorm:"-" json:"payment_method_label,omitempty"`
	TransactionID  string         `gorm:"column:transaction_id;size:255" json:"transaction_id,omitempty"`
	PaymentDetails datatypes.JSON `gorm:"column:payment_details" json:"payment_details,omitempty"`
	PaidAt         *time.Time     `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"booking,omitempty"`
}

// AfterFind fills the presentation labels for the loaded row.
func (p *Payment) AfterFind(*gorm.DB) error {
	p.StatusLabel = PaymentStatusLabels[p.Status]
	p.MethodLabel = PaymentMethodLabels[p.PaymentMethod]
	return nil
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodBankTransfer, PaymentMethodEWallet,
		PaymentMethodVirtualAccount, PaymentMethodCash:
		return true
	}
	return false
}

func (p *Payment) IsPending() bool  { return p.Status == PaymentStatusPending }
func (p *Payment) IsPaid() bool     { return p.Status == PaymentStatusPaid }
func (p *Payment) IsFailed() bool   { return p.Status == PaymentStatusFailed }
func (p *Payment) IsRefunded() bool { return p.Status == PaymentStatusRefunded }

// IsOverdue reports whether a pending payment has been waiting longer than
// 24 hours.
func (p *Payment) IsOverdue() bool {
	if p.Status != PaymentStatusPending {
		return false
	}
	return time.Since(p.CreatedAt) > 24*time.Hour
}
