package commands

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrRegisterCustomerCommandIsNotConstructed = errors.New(
	"RegisterCustomerCommand must be created via NewRegisterCustomerCommand constructor",
)

// RegisterCustomerCommand signs up a customer together with their empty cart.
type RegisterCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	cartID      kernel.UUID
	name        string
	email       string
	phoneNumber string
	address     string

	guard guard.ConstructorGuard
}

// NewRegisterCustomerCommand creates a command to sign up a customer.
// Validates both identifiers and requires an email. Returns an error if any validation fails.
func NewRegisterCustomerCommand(
	customerID, cartID kernel.UUID,
	name, email, phoneNumber, address string,
) (RegisterCustomerCommand, error) {
	if err := errors.Join(customerID.Validate(), cartID.Validate()); err != nil {
		return RegisterCustomerCommand{}, err
	}
	if strings.TrimSpace(email) == "" {
		return RegisterCustomerCommand{}, errs.NewValueIsRequiredError("email")
	}
	return RegisterCustomerCommand{
		customerID:  customerID,
		cartID:      cartID,
		name:        name,
		email:       email,
		phoneNumber: phoneNumber,
		address:     address,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterCustomerCommandIsNotConstructed if validation fails.
func (c RegisterCustomerCommand) Validate() error {
	return c.guard.Validate(ErrRegisterCustomerCommandIsNotConstructed)
}

// CustomerID returns the unique identifier of the customer.
func (c RegisterCustomerCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CartID returns the unique identifier of the cart.
func (c RegisterCustomerCommand) CartID() kernel.UUID {
	return c.cartID
}

// Name returns the display name.
func (c RegisterCustomerCommand) Name() string {
	return c.name
}

// Email returns the contact email address.
func (c RegisterCustomerCommand) Email() string {
	return c.email
}

// PhoneNumber returns the contact phone number.
func (c RegisterCustomerCommand) PhoneNumber() string {
	return c.phoneNumber
}

// Address returns the default delivery address.
func (c RegisterCustomerCommand) Address() string {
	return c.address
}
