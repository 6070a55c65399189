// Package customer holds the customer entity. Every customer owns exactly one cart,
// created together with the customer at registration.
package customer

import (
	"errors"
	"net/mail"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer places orders.
type Customer struct {
	id          kernel.UUID
	name        string
	email       string
	phoneNumber string
	address     string

	isConstructed bool
}

func NewCustomer(id kernel.UUID, name, email, phoneNumber, address string) (*Customer, error) {
	c := &Customer{isConstructed: true}
	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setEmail(email),
	); err != nil {
		return nil, err
	}
	c.phoneNumber = strings.TrimSpace(phoneNumber)
	c.address = strings.TrimSpace(address)
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID     { return c.id }
func (c *Customer) Name() string        { return c.name }
func (c *Customer) Email() string       { return c.email }
func (c *Customer) PhoneNumber() string { return c.phoneNumber }
func (c *Customer) Address() string     { return c.address }

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	c.email = email
	return nil
}
