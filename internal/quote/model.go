// quote/model.go
package quote

import (
	"time"
)

// ServiceKey identifies one of the shop's fixed service categories
type ServiceKey string

const (
	ServiceChips       ServiceKey = "chips"
	ServiceScratches   ServiceKey = "scratches"
	ServiceDents       ServiceKey = "dents"
	ServiceHeadlights  ServiceKey = "headlights"
	ServiceWheels      ServiceKey = "wheels"
	ServiceInterior    ServiceKey = "interior"
	ServiceDetail      ServiceKey = "detail"
	ServiceCarSpaBasic ServiceKey = "carspabasic"
	ServiceCarSpaPlus  ServiceKey = "carspaplus"
	ServiceBedLiner    ServiceKey = "bed_liner"
	ServicePaintBody   ServiceKey = "paint_body"
)

// ServiceKeys is the declared category order. Export and display paths
// iterate this list, never the map, so output ordering is reproducible.
var ServiceKeys = []ServiceKey{
	ServiceChips,
	ServiceScratches,
	ServiceDents,
	ServiceHeadlights,
	ServiceWheels,
	ServiceInterior,
	ServiceDetail,
	ServiceCarSpaBasic,
	ServiceCarSpaPlus,
	ServiceBedLiner,
	ServicePaintBody,
}

var serviceDisplayNames = map[ServiceKey]string{
	ServiceChips:       "Paint Chips Repair",
	ServiceScratches:   "Scratch Removal",
	ServiceDents:       "Dent Repair",
	ServiceHeadlights:  "Headlight Restoration",
	ServiceWheels:      "Wheel Repair",
	ServiceInterior:    "Interior Detailing",
	ServiceDetail:      "Full Detail",
	ServiceCarSpaBasic: "Car Spa Basic Package",
	ServiceCarSpaPlus:  "Car Spa Plus Package",
	ServiceBedLiner:    "Bed Liner Installation",
	ServicePaintBody:   "Paint & Body Work",
}

// DisplayName returns the customer-facing name for a service category
func (k ServiceKey) DisplayName() string {
	return serviceDisplayNames[k]
}

// Valid reports whether k is one of the declared categories
func (k ServiceKey) Valid() bool {
	_, ok := serviceDisplayNames[k]
	return ok
}

// ServiceLine holds per-category costs and the optional damage photo
type ServiceLine struct {
	PhotoLink string  `json:"photo_link,omitempty"`
	PartsCost float64 `json:"parts_cost"`
	LaborCost float64 `json:"labor_cost"`
}

// Active reports whether the category carries any cost. Only active
// categories are exported to Xero.
func (l ServiceLine) Active() bool {
	return l.PartsCost > 0 || l.LaborCost > 0
}

// Quote is a vehicle repair estimate
type Quote struct {
	ID             int64                      `json:"id"`
	QuoteNumber    string                     `json:"quote_number"`
	Date           time.Time                  `json:"date"`
	VINNumber      string                     `json:"vin_number"`
	VINPictureLink string                     `json:"vin_picture_link,omitempty"`
	Year           int                        `json:"year,omitempty"`
	Make           string                     `json:"make,omitempty"`
	Model          string                     `json:"model,omitempty"`
	Instructions   string                     `json:"instructions,omitempty"`
	Services       map[ServiceKey]ServiceLine `json:"services"`
}

// Service returns the line for a category, zero-valued when unset
func (q *Quote) Service(key ServiceKey) ServiceLine {
	return q.Services[key]
}

// ServiceTotal returns parts + labor for one category
func (q *Quote) ServiceTotal(key ServiceKey) float64 {
	line := q.Services[key]
	return line.PartsCost + line.LaborCost
}

// GrandTotal returns the total across all categories
func (q *Quote) GrandTotal() float64 {
	total := 0.0
	for _, key := range ServiceKeys {
		total += q.ServiceTotal(key)
	}
	return total
}
