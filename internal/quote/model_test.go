// quote/model_test.go
package quote

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceLineActive(t *testing.T) {
	assert.False(t, ServiceLine{}.Active())
	assert.False(t, ServiceLine{PhotoLink: "https://cdn.example/p.jpg"}.Active())
	assert.True(t, ServiceLine{PartsCost: 0.01}.Active())
	assert.True(t, ServiceLine{LaborCost: 10}.Active())
}

func TestServiceKeyDisplayName(t *testing.T) {
	assert.Equal(t, "Paint Chips Repair", ServiceChips.DisplayName())
	assert.Equal(t, "Paint & Body Work", ServicePaintBody.DisplayName())
	assert.True(t, ServiceBedLiner.Valid())
	assert.False(t, ServiceKey("rustproofing").Valid())
}

func TestServiceKeysCoverAllCategories(t *testing.T) {
	assert.Len(t, ServiceKeys, len(serviceDisplayNames))
	for _, key := range ServiceKeys {
		assert.True(t, key.Valid())
	}
}

func TestQuoteTotals(t *testing.T) {
	q := &Quote{Services: map[ServiceKey]ServiceLine{
		ServiceChips: {PartsCost: 50, LaborCost: 25},
		ServiceDents: {LaborCost: 100},
	}}

	assert.Equal(t, 75.0, q.ServiceTotal(ServiceChips))
	assert.Equal(t, 100.0, q.ServiceTotal(ServiceDents))
	assert.Equal(t, 0.0, q.ServiceTotal(ServiceWheels))
	assert.Equal(t, 175.0, q.GrandTotal())
}
