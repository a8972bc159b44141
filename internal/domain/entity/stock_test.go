package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

func TestStockStatus_Clasificacion(t *testing.T) {
	cases := []struct {
		name     string
		current  int
		min      int
		expected entity.StockStatus
	}{
		{"agotado", 0, 10, entity.StockStatusOutOfStock},
		{"agotado sin mínimo", 0, 0, entity.StockStatusOutOfStock},
		{"bajo el mínimo", 5, 10, entity.StockStatusLow},
		{"justo en el mínimo", 10, 10, entity.StockStatusLow},
		{"normal", 15, 10, entity.StockStatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := &entity.StockOffice{CurrentStock: tc.current, MinStock: tc.min}
			assert.Equal(t, tc.expected, item.StockStatus())
		})
	}
}

// Un delta negativo mayor que la existencia recorta a cero, nunca negativo.
func TestClampQuantity(t *testing.T) {
	assert.Equal(t, 0, entity.ClampQuantity(3, -10))
	assert.Equal(t, 0, entity.ClampQuantity(0, -1))
	assert.Equal(t, 8, entity.ClampQuantity(3, 5))
	assert.Equal(t, 3, entity.ClampQuantity(3, 0))
}

func TestRole_CanAccess(t *testing.T) {
	// Admin ve todo.
	for _, res := range []entity.Resource{
		entity.ResourceInvoices, entity.ResourceShipments, entity.ResourceStock,
		entity.ResourceDocuments, entity.ResourceUsers,
	} {
		assert.True(t, entity.RoleAdmin.CanAccess(res), "admin: %s", res)
	}

	// Staff solo documentos y embarques.
	assert.True(t, entity.RoleStaff.CanAccess(entity.ResourceDocuments))
	assert.True(t, entity.RoleStaff.CanAccess(entity.ResourceShipments))
	assert.False(t, entity.RoleStaff.CanAccess(entity.ResourceInvoices))
	assert.False(t, entity.RoleStaff.CanAccess(entity.ResourceStock))
	assert.False(t, entity.RoleStaff.CanAccess(entity.ResourceUsers))

	// Rol desconocido no accede a nada.
	assert.False(t, entity.Role("guest").CanAccess(entity.ResourceDocuments))
}
