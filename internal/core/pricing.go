package core

import "github.com/shopspring/decimal"

// PricedLine is an order line with its price frozen and subtotal computed.
type PricedLine struct {
	CookieTypeID int
	Quantity     int
	PricePerBox  decimal.Decimal
	Subtotal     decimal.Decimal
}

// PriceOrder freezes catalog prices onto the requested lines and computes
// the order total. prices maps cookie type id to the current unit price for
// the calling seller; ids absent from the map are rejected.
//
// All arithmetic is exact decimal: Subtotal = PricePerBox × Quantity and
// total = Σ Subtotal + donation, with no floating-point intermediates.
func PriceOrder(items []OrderItemInput, prices map[int]decimal.Decimal, donation decimal.Decimal) ([]PricedLine, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, validationf("order must have at least one item")
	}
	if donation.IsNegative() {
		return nil, decimal.Zero, validationf("donation cannot be negative, got %s", donation)
	}

	total := decimal.Zero
	lines := make([]PricedLine, 0, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, decimal.Zero, validationf("item %d: quantity must be positive, got %d", i+1, item.Quantity)
		}
		price, ok := prices[item.CookieTypeID]
		if !ok {
			return nil, decimal.Zero, validationf("item %d: cookie type %d not found", i+1, item.CookieTypeID)
		}

		subtotal := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(subtotal)
		lines = append(lines, PricedLine{
			CookieTypeID: item.CookieTypeID,
			Quantity:     item.Quantity,
			PricePerBox:  price,
			Subtotal:     subtotal,
		})
	}

	return lines, total.Add(donation), nil
}
