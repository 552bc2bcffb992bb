package page

import "github.com/outofforest/morselq1/internal/types"

// Quantity returns l_quantity[i] as a Numeric at ScaleQuantity.
func (p *LineitemPageQ1) Quantity(i uint32) types.Numeric {
	return types.NewNumeric(p.LQuantity[i], ScaleQuantity)
}

// ExtendedPrice returns l_extendedprice[i] as a Numeric at ScaleExtendedPrice.
func (p *LineitemPageQ1) ExtendedPrice(i uint32) types.Numeric {
	return types.NewNumeric(p.LExtendedprice[i], ScaleExtendedPrice)
}

// Discount returns l_discount[i] as a Numeric at ScaleDiscount.
func (p *LineitemPageQ1) Discount(i uint32) types.Numeric {
	return types.NewNumeric(p.LDiscount[i], ScaleDiscount)
}

// Tax returns l_tax[i] as a Numeric at ScaleTax.
func (p *LineitemPageQ1) Tax(i uint32) types.Numeric {
	return types.NewNumeric(p.LTax[i], ScaleTax)
}
