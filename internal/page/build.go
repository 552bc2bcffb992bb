package page

import "github.com/outofforest/morselq1/internal/types"

// Tuple is a convenience value used by tests and fixture builders to describe one
// lineitem row without poking at the page's parallel arrays directly.
type Tuple struct {
	ShipDate      types.Date
	ReturnFlag    byte
	LineStatus    byte
	Quantity      int64 // mantissa at ScaleQuantity
	ExtendedPrice int64 // mantissa at ScaleExtendedPrice
	Discount      int64 // mantissa at ScaleDiscount
	Tax           int64 // mantissa at ScaleTax
}

// AppendTuple writes t into the next free slot and bumps NumTuples. It panics if the
// page is already full.
func (p *LineitemPageQ1) AppendTuple(t Tuple) {
	if p.NumTuples >= KMaxNumTuples {
		panic("page: AppendTuple called on a full page")
	}
	i := p.NumTuples
	p.LShipdate[i] = t.ShipDate
	p.LReturnflag[i] = t.ReturnFlag
	p.LLinestatus[i] = t.LineStatus
	p.LQuantity[i] = t.Quantity
	p.LExtendedprice[i] = t.ExtendedPrice
	p.LDiscount[i] = t.Discount
	p.LTax[i] = t.Tax
	p.NumTuples++
}
