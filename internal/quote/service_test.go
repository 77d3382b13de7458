// quote/service_test.go
package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	valid := func() *Quote {
		return &Quote{
			QuoteNumber: "Q-100",
			Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			VINNumber:   "1HGCM82633A004352",
			Services: map[ServiceKey]ServiceLine{
				ServiceChips: {PartsCost: 50},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Quote)
		wantErr bool
	}{
		{"valid", func(q *Quote) {}, false},
		{"no services at all", func(q *Quote) { q.Services = nil }, false},
		{"missing quote number", func(q *Quote) { q.QuoteNumber = "" }, true},
		{"missing date", func(q *Quote) { q.Date = time.Time{} }, true},
		{"missing vin", func(q *Quote) { q.VINNumber = "" }, true},
		{"unknown service", func(q *Quote) {
			q.Services["undercoating"] = ServiceLine{PartsCost: 10}
		}, true},
		{"negative cost", func(q *Quote) {
			q.Services[ServiceChips] = ServiceLine{PartsCost: -1}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(q)
			err := validate(q)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
