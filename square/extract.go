package square

import (
	"strconv"
	"strings"

	"github.com/jrsteele09/pos-ledger-sync/money"
	"github.com/rs/zerolog/log"
)

// LineItem is a billable order line.
type LineItem struct {
	Description  string // Catalog item name
	VariantLabel string // Variation name, may be empty
	Quantity     int
	UnitPrice    money.Money
}

// Allowlist holds the catalog names that are invoiced. Matching is exact and case-insensitive.
type Allowlist map[string]struct{}

func NewAllowlist(names ...string) Allowlist {
	a := make(Allowlist, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			a[strings.ToLower(n)] = struct{}{}
		}
	}
	return a
}

func (a Allowlist) Contains(name string) bool {
	_, ok := a[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// ExtractLineItems returns the allow-listed lines of order in order.
// The unit price is the line's total money, not divided by quantity.
// Lines whose quantity is not a whole number of zero or more are skipped.
func ExtractLineItems(order *Order, allow Allowlist) []LineItem {
	if order == nil {
		return nil
	}

	var items []LineItem
	for _, li := range order.LineItems {
		if !allow.Contains(li.Name) {
			continue
		}

		qty, err := strconv.Atoi(strings.TrimSpace(li.Quantity))
		if err != nil || qty < 0 {
			log.Warn().
				Str("order_id", order.ID).
				Str("item", li.Name).
				Str("quantity", li.Quantity).
				Stringer("total", li.TotalMoney.ToMoney()).
				Msg("Skipping line item with unsupported quantity")
			continue
		}

		items = append(items, LineItem{
			Description:  li.Name,
			VariantLabel: li.VariationName,
			Quantity:     qty,
			UnitPrice:    li.TotalMoney.ToMoney(),
		})
	}
	return items
}
