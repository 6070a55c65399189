package category_test

import (
	"testing"

	"fooddelivery/internal/core/domain/model/category"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	c, err := category.NewCategory(kernel.NewUUID(), " Desserts ", "sweet things")
	require.NoError(t, err)
	assert.Equal(t, "Desserts", c.Name())
	assert.NoError(t, c.Validate())

	_, err = category.NewCategory(kernel.NewUUID(), "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var zero *category.Category
	assert.ErrorIs(t, zero.Validate(), category.ErrCategoryIsNotConstructed)
}
