// xero/translator.go
package xero

import (
	"fmt"

	"github.com/finishlineauto/quoteserver/internal/quote"
)

// LineItem is one priced entry in a Xero quote
type LineItem struct {
	Description string  `json:"Description"`
	Quantity    int     `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
}

// QuotePayload is the Xero Quotes API representation of a quote
type QuotePayload struct {
	QuoteNumber string     `json:"QuoteNumber"`
	Date        string     `json:"Date"`
	Contact     Contact    `json:"Contact"`
	LineItems   []LineItem `json:"LineItems"`
	Reference   string     `json:"Reference"`
	Summary     string     `json:"Summary"`
	Title       string     `json:"Title"`
	Notes       string     `json:"Notes"`
}

// Contact identifies the Xero contact the quote is issued to
type Contact struct {
	ContactID string `json:"ContactID"`
}

// BuildQuotePayload translates a quote into the Xero line-item schema.
// Pure and deterministic: categories are walked in declared order, and
// a category produces line items only for strictly positive costs.
func BuildQuotePayload(q *quote.Quote, contactID string) QuotePayload {
	var items []LineItem

	for _, key := range quote.ServiceKeys {
		line := q.Service(key)
		if !line.Active() {
			continue
		}
		if line.PartsCost > 0 {
			items = append(items, LineItem{
				Description: key.DisplayName() + " - Parts",
				Quantity:    1,
				UnitAmount:  line.PartsCost,
			})
		}
		if line.LaborCost > 0 {
			items = append(items, LineItem{
				Description: key.DisplayName() + " - Labor",
				Quantity:    1,
				UnitAmount:  line.LaborCost,
			})
		}
	}

	vehicle := fmt.Sprintf("%d %s %s", q.Year, q.Make, q.Model)

	return QuotePayload{
		QuoteNumber: q.QuoteNumber,
		Date:        q.Date.Format("2006-01-02"),
		Contact:     Contact{ContactID: contactID},
		LineItems:   items,
		Reference:   vehicle,
		Summary:     fmt.Sprintf("Vehicle: %s\nVIN: %s", vehicle, q.VINNumber),
		Title:       "Body Work Quote - " + q.QuoteNumber,
		Notes:       q.Instructions,
	}
}
