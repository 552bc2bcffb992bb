// Package aggregate implements the two-phase (thread-local + merge) hash
// aggregation of TPC-H Q1: a direct-addressed table keyed by
// (l_returnflag<<8)|l_linestatus, plus the commutative merge that folds every
// worker's table into one.
package aggregate

import (
	"sort"

	"github.com/outofforest/morselq1/internal/types"
)

// TableSize is the number of slots in the direct-addressed table: one per
// possible (l_returnflag<<8)|l_linestatus value.
const TableSize = 1 << 16

// Entry is one group's running aggregate: SumQty/SumBasePrice/SumDisc at
// scale 2, SumDiscPrice/SumCharge at scale 4.
type Entry struct {
	ReturnFlag types.Char
	LineStatus types.Char
	Count      uint32

	SumQty       types.Numeric
	SumBasePrice types.Numeric
	SumDisc      types.Numeric
	SumDiscPrice types.Numeric
	SumCharge    types.Numeric
}

// HashTable is a thread-local, direct-addressed aggregate table plus the
// append-only index of its populated slots.
type HashTable struct {
	slots [TableSize]*Entry
	valid []uint16
}

// New returns an empty HashTable.
func New() *HashTable {
	return &HashTable{}
}

// ValidIndexes returns the slot indexes populated so far, in insertion order.
// The returned slice aliases internal state and must not be mutated.
func (h *HashTable) ValidIndexes() []uint16 {
	return h.valid
}

// Entry returns the populated slot at idx, or nil if it has never been
// touched.
func (h *HashTable) Entry(idx uint16) *Entry {
	return h.slots[idx]
}

// Accumulate folds one tuple into its group's entry, creating the entry on
// first touch. quantity/extendedPrice/discount are scale-2 values straight off
// the page; tax is scale-2 as well.
func (h *HashTable) Accumulate(returnFlag, lineStatus types.Char, quantity, extendedPrice, discount, tax types.Numeric) {
	idx := types.GroupIndex(returnFlag, lineStatus)
	e := h.slots[idx]
	if e == nil {
		e = &Entry{ReturnFlag: returnFlag, LineStatus: lineStatus}
		h.slots[idx] = e
		h.valid = append(h.valid, idx)
	}

	// common = l_extendedprice * (1 - l_discount), scale 2 * scale 2 = scale 4.
	common := extendedPrice.Mul(types.One().Sub(discount))
	// sum_charge term = common.CastM2() * (1 + l_tax), scale 2 * scale 2 = scale 4.
	chargeTerm := common.CastM2().Mul(types.One().Add(tax))

	if e.Count == 0 {
		e.SumQty = quantity
		e.SumBasePrice = extendedPrice
		e.SumDisc = discount
		e.SumDiscPrice = common
		e.SumCharge = chargeTerm
	} else {
		e.SumQty = e.SumQty.Add(quantity)
		e.SumBasePrice = e.SumBasePrice.Add(extendedPrice)
		e.SumDisc = e.SumDisc.Add(discount)
		e.SumDiscPrice = e.SumDiscPrice.Add(common)
		e.SumCharge = e.SumCharge.Add(chargeTerm)
	}
	e.Count++
}

// MergeFrom folds src into h: a populated slot either moves into an empty slot
// of h, or sum-merges into h's existing entry for that slot. The result is
// independent of merge order because every field merge is addition.
func (h *HashTable) MergeFrom(src *HashTable) {
	for _, idx := range src.valid {
		e := src.slots[idx]
		if e == nil {
			continue
		}

		d := h.slots[idx]
		if d == nil {
			h.slots[idx] = e
			h.valid = append(h.valid, idx)
			continue
		}

		d.Count += e.Count
		d.SumQty = d.SumQty.Add(e.SumQty)
		d.SumBasePrice = d.SumBasePrice.Add(e.SumBasePrice)
		d.SumDisc = d.SumDisc.Add(e.SumDisc)
		d.SumDiscPrice = d.SumDiscPrice.Add(e.SumDiscPrice)
		d.SumCharge = d.SumCharge.Add(e.SumCharge)
	}
}

// SortedEntries returns every populated entry, ordered lexicographically by
// (l_returnflag, l_linestatus), ready for printing.
func (h *HashTable) SortedEntries() []*Entry {
	entries := make([]*Entry, 0, len(h.valid))
	for _, idx := range h.valid {
		if e := h.slots[idx]; e != nil {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.ReturnFlag != b.ReturnFlag {
			return a.ReturnFlag < b.ReturnFlag
		}
		return a.LineStatus < b.LineStatus
	})
	return entries
}

// Merge folds every table in tables[1:] into tables[0] and returns tables[0].
// Panics if tables is empty.
func Merge(tables []*HashTable) *HashTable {
	root := tables[0]
	for _, t := range tables[1:] {
		root.MergeFrom(t)
	}
	return root
}
