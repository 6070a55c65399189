package cartrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/cart"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the carts row; a customer owns at most one cart.
type CartDTO struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex"`
	UpdatedAt  time.Time     `gorm:"not null"`
	Lines      []CartLineDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

func (CartDTO) TableName() string {
	return "carts"
}

type CartLineDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_item"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_lines_cart_item"`
	Position   int             `gorm:"type:int;not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity   int             `gorm:"type:int;not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

func (CartLineDTO) TableName() string {
	return "cart_lines"
}

func fromDomain(c *cart.Cart) CartDTO {
	dto := CartDTO{
		ID:         c.ID().Bytes(),
		CustomerID: c.CustomerID().Bytes(),
		UpdatedAt:  c.UpdatedAt(),
	}
	for i, line := range c.Lines() {
		dto.Lines = append(dto.Lines, CartLineDTO{
			ID:         line.ID().Bytes(),
			CartID:     dto.ID,
			ItemID:     line.ItemID().Bytes(),
			Position:   i,
			UnitPrice:  line.UnitPrice().Amount(),
			Quantity:   line.Quantity(),
			TotalPrice: line.TotalPrice().Amount(),
		})
	}
	return dto
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromGoogle(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(id, customerID, lines, dto.UpdatedAt)
}

func lineToDomain(dto CartLineDTO) (cart.Line, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return cart.Line{}, err
	}
	itemID, err := kernel.UUIDFromGoogle(dto.ItemID)
	if err != nil {
		return cart.Line{}, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return cart.Line{}, err
	}
	return cart.RestoreLine(id, itemID, unitPrice, dto.Quantity)
}
