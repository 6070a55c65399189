package paymentrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO is the payments row. The unique index on order_id keeps one payment per order;
// detached payments have a NULL order_id, which Postgres never treats as a duplicate.
type PaymentDTO struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	Amount    decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method    string          `gorm:"type:varchar(32);not null"`
	Status    int             `gorm:"type:int;not null;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null;index"`
	Version   int             `gorm:"type:int;not null;default:0"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	var orderID *uuid.UUID
	if id := p.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return PaymentDTO{
		ID:        p.ID().Bytes(),
		OrderID:   orderID,
		Amount:    p.Amount().Amount(),
		Method:    string(p.Method()),
		Status:    int(p.Status()),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
		Version:   p.Version(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromGoogle(*dto.OrderID)
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		amount,
		payment.Method(dto.Method),
		payment.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.Version,
	)
}
