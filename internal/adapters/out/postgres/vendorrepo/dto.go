package vendorrepo

import (
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/vendor"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VendorDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	VendorType string    `gorm:"type:varchar(64);not null;index"`
	Items      []ItemDTO `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

func (VendorDTO) TableName() string {
	return "vendors"
}

type ItemDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Available   bool            `gorm:"not null"`
}

func (ItemDTO) TableName() string {
	return "items"
}

func fromDomain(v *vendor.Vendor) VendorDTO {
	dto := VendorDTO{
		ID:         v.ID().Bytes(),
		Name:       v.Name(),
		VendorType: v.Type().String(),
	}
	for _, item := range v.Items() {
		var categoryID *uuid.UUID
		if id := item.CategoryID(); id != nil {
			raw := id.Bytes()
			categoryID = &raw
		}
		dto.Items = append(dto.Items, ItemDTO{
			ID:          item.ID().Bytes(),
			VendorID:    dto.ID,
			Name:        item.Name(),
			Description: item.Description(),
			Price:       item.Price().Amount(),
			CategoryID:  categoryID,
			Available:   item.IsAvailable(),
		})
	}
	return dto
}

func toDomain(dto VendorDTO) (*vendor.Vendor, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	items := make([]*vendor.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return vendor.RestoreVendor(id, dto.Name, vendor.Type(dto.VendorType), items)
}

func itemToDomain(dto ItemDTO) (*vendor.Item, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}

	var categoryID *kernel.UUID
	if dto.CategoryID != nil {
		cID, categoryErr := kernel.UUIDFromGoogle(*dto.CategoryID)
		if categoryErr != nil {
			return nil, categoryErr
		}
		categoryID = &cID
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return vendor.RestoreItem(id, dto.Name, dto.Description, price, categoryID, dto.Available)
}
