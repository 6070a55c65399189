package customer_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	testCases := []struct {
		name    string
		cName   string
		email   string
		wantErr error
	}{
		{name: "valid", cName: "Kemi", email: "Kemi@Example.com "},
		{name: "missing name", cName: "", email: "k@example.com", wantErr: errs.ErrValueIsRequired},
		{name: "missing email", cName: "Kemi", email: "", wantErr: errs.ErrValueIsRequired},
		{name: "malformed email", cName: "Kemi", email: "not-an-email", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := customer.NewCustomer(kernel.NewUUID(), tc.cName, tc.email, "", "12 Allen Ave")
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "kemi@example.com", c.Email())
			assert.Equal(t, "12 Allen Ave", c.Address())
		})
	}
}
