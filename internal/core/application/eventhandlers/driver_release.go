package eventhandlers

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/ddd"
	"fooddelivery/internal/pkg/errs"
)

// DriverRelease frees the driver of an order that was completed or cancelled.
func DriverRelease(ctx context.Context, uow ports.UnitOfWork, event ddd.DomainEvent) error {
	changed, ok := event.(order.StatusChanged)
	if !ok || changed.DriverID == nil {
		return nil
	}
	if changed.NewStatus != order.Completed && !changed.NewStatus.IsCancellation() {
		return nil
	}

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, *changed.DriverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if d.Status() != driver.Busy {
		return nil
	}

	d.Release()
	return driverRepo.Update(ctx, d)
}
