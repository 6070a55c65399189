package commands

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrChangeDriverStatusCommandIsNotConstructed = errors.New(
		"ChangeDriverStatusCommand must be created via NewChangeDriverStatusCommand constructor",
	)
)

// CreateDriverCommand registers a driver, initially AVAILABLE.
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	name         string
	phoneNumber  string
	vehiclePlate string

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a driver. Returns an error if the ID is invalid.
func NewCreateDriverCommand(driverID kernel.UUID, name, phoneNumber, vehiclePlate string) (CreateDriverCommand, error) {
	if err := driverID.Validate(); err != nil {
		return CreateDriverCommand{}, err
	}
	return CreateDriverCommand{
		driverID:     driverID,
		name:         name,
		phoneNumber:  phoneNumber,
		vehiclePlate: vehiclePlate,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDriverCommandIsNotConstructed if validation fails.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// CreateDriverCommandHandler stores new drivers.
type CreateDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewCreateDriverCommandHandler creates a handler backed by the driver unit of work.
func NewCreateDriverCommandHandler(uowFactory DriverUoWFactory) CreateDriverCommandHandler {
	return CreateDriverCommandHandler{uowFactory: uowFactory}
}

// Handle validates the driver fields and stores the driver.
func (h CreateDriverCommandHandler) Handle(ctx context.Context, cmd CreateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := driver.NewDriver(cmd.driverID, cmd.name, cmd.phoneNumber, cmd.vehiclePlate)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// ChangeDriverStatusCommand lets a driver go online or offline.
type ChangeDriverStatusCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	status   driver.Status

	guard guard.ConstructorGuard
}

// NewChangeDriverStatusCommand creates a command to set a driver's status.
// Validates the driver ID and status. Returns an error if any validation fails.
func NewChangeDriverStatusCommand(driverID kernel.UUID, status driver.Status) (ChangeDriverStatusCommand, error) {
	if err := errors.Join(driverID.Validate(), status.Validate()); err != nil {
		return ChangeDriverStatusCommand{}, err
	}
	return ChangeDriverStatusCommand{driverID: driverID, status: status, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeDriverStatusCommandIsNotConstructed if validation fails.
func (c ChangeDriverStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeDriverStatusCommandIsNotConstructed)
}

// ChangeDriverStatusCommandHandler updates driver availability.
type ChangeDriverStatusCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewChangeDriverStatusCommandHandler creates a handler backed by the driver unit of work.
func NewChangeDriverStatusCommandHandler(uowFactory DriverUoWFactory) ChangeDriverStatusCommandHandler {
	return ChangeDriverStatusCommandHandler{uowFactory: uowFactory}
}

// Handle applies the status. A BUSY driver cannot go offline.
func (h ChangeDriverStatusCommandHandler) Handle(ctx context.Context, cmd ChangeDriverStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, cmd.driverID)
	if err != nil {
		return err
	}
	if err = d.ChangeStatus(cmd.status); err != nil {
		return err
	}
	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
