package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Total and snapshots are written once by Add.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CartID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	DriverID        *uuid.UUID      `gorm:"type:uuid;index"`
	Total           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OrderDate       time.Time       `gorm:"not null;index"`
	ReceivedDate    *time.Time
	DeliveryAddress string           `gorm:"type:text"`
	Status          int              `gorm:"type:int;not null;index"`
	StatusChangedAt time.Time        `gorm:"not null"`
	Version         int              `gorm:"type:int;not null;default:0"`
	Items           []OrderItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Vendors         []OrderVendorDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is an item snapshot frozen at order creation.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position    int             `gorm:"type:int;not null"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity    int             `gorm:"type:int;not null"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	VendorName  string          `gorm:"type:varchar(255);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

// OrderVendorDTO is a vendor snapshot frozen at order creation.
type OrderVendorDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	VendorID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position   int       `gorm:"type:int;not null"`
	Name       string    `gorm:"type:varchar(255);not null"`
	VendorType string    `gorm:"type:varchar(64);not null"`
}

func (OrderVendorDTO) TableName() string {
	return "order_vendors"
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		CustomerID:      o.CustomerID().Bytes(),
		CartID:          o.CartID().Bytes(),
		DriverID:        driverID,
		Total:           o.Total().Amount(),
		OrderDate:       o.OrderDate(),
		ReceivedDate:    o.ReceivedDate(),
		DeliveryAddress: o.DeliveryAddress(),
		Status:          int(o.Status()),
		StatusChangedAt: o.StatusChangedAt(),
		Version:         o.Version(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     dto.ID,
			Position:    i,
			ItemID:      item.ItemID.Bytes(),
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price.Amount(),
			Quantity:    item.Quantity,
			VendorID:    item.VendorID.Bytes(),
			VendorName:  item.VendorName,
		})
	}
	for i, v := range o.Vendors() {
		dto.Vendors = append(dto.Vendors, OrderVendorDTO{
			OrderID:    dto.ID,
			VendorID:   v.VendorID.Bytes(),
			Position:   i,
			Name:       v.Name,
			VendorType: v.VendorType,
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids, err := uuids(dto.ID, dto.CustomerID, dto.CartID)
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromGoogle(*dto.DriverID)
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	items := make([]order.ItemSummary, 0, len(dto.Items))
	for _, item := range dto.Items {
		summary, itemErr := itemToDomain(item)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, summary)
	}

	vendors := make([]order.VendorSummary, 0, len(dto.Vendors))
	for _, v := range dto.Vendors {
		vendorID, vendorErr := kernel.UUIDFromGoogle(v.VendorID)
		if vendorErr != nil {
			return nil, vendorErr
		}
		vendors = append(vendors, order.VendorSummary{VendorID: vendorID, Name: v.Name, VendorType: v.VendorType})
	}

	return order.RestoreOrder(
		ids[0], ids[1], ids[2],
		driverID,
		total,
		dto.OrderDate,
		dto.ReceivedDate,
		dto.DeliveryAddress,
		order.Status(dto.Status),
		dto.StatusChangedAt,
		items,
		vendors,
		dto.Version,
	)
}

func itemToDomain(dto OrderItemDTO) (order.ItemSummary, error) {
	ids, err := uuids(dto.ItemID, dto.VendorID)
	if err != nil {
		return order.ItemSummary{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return order.ItemSummary{}, err
	}
	return order.ItemSummary{
		ItemID:      ids[0],
		Name:        dto.Name,
		Description: dto.Description,
		Price:       price,
		Quantity:    dto.Quantity,
		VendorID:    ids[1],
		VendorName:  dto.VendorName,
	}, nil
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromGoogle(r)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
