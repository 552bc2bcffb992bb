package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/aggregate"
	"github.com/outofforest/morselq1/internal/types"
)

func num(mantissa int64, scale int) types.Numeric {
	return types.NewNumeric(mantissa, scale)
}

func TestAccumulateCreatesEntryOnFirstTouch(t *testing.T) {
	requireT := require.New(t)

	h := aggregate.New()
	h.Accumulate(types.ReturnFlagA, types.LineStatusF, num(1700, 2), num(345000, 2), num(5, 2), num(8, 2))

	requireT.Len(h.ValidIndexes(), 1)
	idx := h.ValidIndexes()[0]
	e := h.Entry(idx)
	requireT.NotNil(e)
	requireT.EqualValues(1, e.Count)
	requireT.Equal(types.ReturnFlagA, e.ReturnFlag)
	requireT.Equal(types.LineStatusF, e.LineStatus)
}

func TestValidIndexesHasNoDuplicatesAndMatchesPopulatedSlots(t *testing.T) {
	requireT := require.New(t)

	h := aggregate.New()
	for i := 0; i < 5; i++ {
		h.Accumulate(types.ReturnFlagA, types.LineStatusF, num(100, 2), num(100, 2), num(0, 2), num(0, 2))
	}
	h.Accumulate(types.ReturnFlagN, types.LineStatusO, num(100, 2), num(100, 2), num(0, 2), num(0, 2))

	seen := make(map[uint16]bool)
	for _, idx := range h.ValidIndexes() {
		requireT.False(seen[idx], "duplicate index in ValidIndexes")
		seen[idx] = true
		requireT.NotNil(h.Entry(idx))
	}
	requireT.Len(seen, 2)
}

func TestMergeFromIsEquivalentToSingleThreadAccumulation(t *testing.T) {
	requireT := require.New(t)

	single := aggregate.New()
	a := aggregate.New()
	b := aggregate.New()

	rows := []struct {
		flag, status types.Char
		qty, price   int64
	}{
		{types.ReturnFlagA, types.LineStatusF, 100, 1000},
		{types.ReturnFlagA, types.LineStatusF, 200, 2000},
		{types.ReturnFlagN, types.LineStatusO, 300, 3000},
		{types.ReturnFlagR, types.LineStatusF, 400, 4000},
	}

	for i, r := range rows {
		single.Accumulate(r.flag, r.status, num(r.qty, 2), num(r.price, 2), num(0, 2), num(0, 2))
		if i%2 == 0 {
			a.Accumulate(r.flag, r.status, num(r.qty, 2), num(r.price, 2), num(0, 2), num(0, 2))
		} else {
			b.Accumulate(r.flag, r.status, num(r.qty, 2), num(r.price, 2), num(0, 2), num(0, 2))
		}
	}

	merged := aggregate.Merge([]*aggregate.HashTable{a, b})

	wantEntries := single.SortedEntries()
	gotEntries := merged.SortedEntries()

	requireT.Len(gotEntries, len(wantEntries))
	for i := range wantEntries {
		requireT.Equal(wantEntries[i].ReturnFlag, gotEntries[i].ReturnFlag)
		requireT.Equal(wantEntries[i].LineStatus, gotEntries[i].LineStatus)
		requireT.Equal(wantEntries[i].Count, gotEntries[i].Count)
		requireT.Equal(wantEntries[i].SumQty.String(), gotEntries[i].SumQty.String())
		requireT.Equal(wantEntries[i].SumBasePrice.String(), gotEntries[i].SumBasePrice.String())
	}
}

func TestMergeIsOrderIndependent(t *testing.T) {
	requireT := require.New(t)

	build := func(order []int) *aggregate.HashTable {
		tables := make([]*aggregate.HashTable, 3)
		for i := range tables {
			tables[i] = aggregate.New()
		}
		values := []int64{10, 20, 30}
		for _, i := range order {
			tables[i].Accumulate(types.ReturnFlagA, types.LineStatusF, num(values[i], 2), num(values[i], 2), num(0, 2), num(0, 2))
		}
		return aggregate.Merge([]*aggregate.HashTable{tables[0], tables[1], tables[2]})
	}

	forward := build([]int{0, 1, 2})
	reverse := build([]int{2, 1, 0})

	fEntries := forward.SortedEntries()
	rEntries := reverse.SortedEntries()

	requireT.Len(fEntries, 1)
	requireT.Len(rEntries, 1)
	requireT.Equal(fEntries[0].Count, rEntries[0].Count)
	requireT.Equal(fEntries[0].SumQty.String(), rEntries[0].SumQty.String())
}

func TestSortedEntriesOrderedByFlagThenStatus(t *testing.T) {
	requireT := require.New(t)

	h := aggregate.New()
	h.Accumulate(types.ReturnFlagR, types.LineStatusF, num(1, 2), num(1, 2), num(0, 2), num(0, 2))
	h.Accumulate(types.ReturnFlagA, types.LineStatusF, num(1, 2), num(1, 2), num(0, 2), num(0, 2))
	h.Accumulate(types.ReturnFlagN, types.LineStatusO, num(1, 2), num(1, 2), num(0, 2), num(0, 2))

	entries := h.SortedEntries()
	requireT.Len(entries, 3)
	requireT.Equal(types.ReturnFlagA, entries[0].ReturnFlag)
	requireT.Equal(types.ReturnFlagN, entries[1].ReturnFlag)
	requireT.Equal(types.ReturnFlagR, entries[2].ReturnFlag)
}

func TestEntryResultComputesAverages(t *testing.T) {
	requireT := require.New(t)

	h := aggregate.New()
	h.Accumulate(types.ReturnFlagA, types.LineStatusF, num(1000, 2), num(2000, 2), num(0, 2), num(0, 2))
	h.Accumulate(types.ReturnFlagA, types.LineStatusF, num(3000, 2), num(4000, 2), num(0, 2), num(0, 2))

	e := h.Entry(h.ValidIndexes()[0])
	r := e.Result()

	requireT.EqualValues(2, r.CountOrder)
	requireT.Equal("40.00", r.SumQty.String())
	requireT.Equal("60.00", r.SumBasePrice.String())
	requireT.Equal("20.00", r.AvgQty.String())
	requireT.Equal("30.00", r.AvgPrice.String())
}
