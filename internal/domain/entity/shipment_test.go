package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
)

// La progresión es fija: Scheduled → On Transit → Arrived → Completed.
func TestShipmentStatus_Progresion(t *testing.T) {
	s := entity.ShipmentStatusScheduled

	want := []entity.ShipmentStatus{
		entity.ShipmentStatusOnTransit,
		entity.ShipmentStatusArrived,
		entity.ShipmentStatusCompleted,
	}
	for _, expected := range want {
		next, ok := s.Next()
		require.True(t, ok, "desde %q debe existir sucesor", s)
		assert.Equal(t, expected, next)
		s = next
	}

	// Cuarto avance: Completed es terminal, no hay sucesor.
	_, ok := s.Next()
	assert.False(t, ok)
	assert.False(t, s.CanAdvance())
}

func TestShipmentStatus_Valid(t *testing.T) {
	assert.True(t, entity.ShipmentStatusOnTransit.Valid())
	assert.False(t, entity.ShipmentStatus("Delivered").Valid())
	assert.False(t, entity.ShipmentStatus("").Valid())
}

// La fecha de llegada se estampa al entrar a Arrived o Completed, no antes.
func TestShipmentStatus_NeedsArrivalDate(t *testing.T) {
	assert.False(t, entity.ShipmentStatusScheduled.NeedsArrivalDate())
	assert.False(t, entity.ShipmentStatusOnTransit.NeedsArrivalDate())
	assert.True(t, entity.ShipmentStatusArrived.NeedsArrivalDate())
	assert.True(t, entity.ShipmentStatusCompleted.NeedsArrivalDate())
}
