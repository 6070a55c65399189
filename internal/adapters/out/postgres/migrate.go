package postgres

import (
	"fooddelivery/internal/adapters/out/postgres/cartrepo"
	"fooddelivery/internal/adapters/out/postgres/categoryrepo"
	"fooddelivery/internal/adapters/out/postgres/customerrepo"
	"fooddelivery/internal/adapters/out/postgres/driverrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/vendorrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&categoryrepo.CategoryDTO{},
		&customerrepo.CustomerDTO{},
		&driverrepo.DriverDTO{},
		&vendorrepo.VendorDTO{},
		&vendorrepo.ItemDTO{},
		&cartrepo.CartDTO{},
		&cartrepo.CartLineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.OrderVendorDTO{},
		&paymentrepo.PaymentDTO{},
	)
}
