package aggregate

import "github.com/outofforest/morselq1/internal/types"

// Result is one printed group row: the pipe-delimited result stream columns,
// l_returnflag/l_linestatus through count_order.
type Result struct {
	ReturnFlag types.Char
	LineStatus types.Char

	SumQty       types.Numeric
	SumBasePrice types.Numeric
	SumDiscPrice types.Numeric
	SumCharge    types.Numeric
	AvgQty       types.Numeric
	AvgPrice     types.Numeric
	AvgDisc      types.Numeric
	CountOrder   uint32
}

// Result computes avg_x = sum_x / count in the scale of sum_x.
func (e *Entry) Result() Result {
	count := types.NewNumeric(int64(e.Count), 0)
	return Result{
		ReturnFlag:   e.ReturnFlag,
		LineStatus:   e.LineStatus,
		SumQty:       e.SumQty,
		SumBasePrice: e.SumBasePrice,
		SumDiscPrice: e.SumDiscPrice,
		SumCharge:    e.SumCharge,
		AvgQty:       e.SumQty.Div(count),
		AvgPrice:     e.SumBasePrice.Div(count),
		AvgDisc:      e.SumDisc.Div(count),
		CountOrder:   e.Count,
	}
}
