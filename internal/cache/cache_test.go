package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outofforest/morselq1/internal/cache"
	"github.com/outofforest/morselq1/internal/iofile"
	"github.com/outofforest/morselq1/internal/ioring"
	"github.com/outofforest/morselq1/internal/page"
	"github.com/outofforest/morselq1/internal/swip"
	"github.com/outofforest/morselq1/internal/types"
)

func buildPages(t *testing.T, quantities ...int64) []byte {
	t.Helper()

	data := make([]byte, 0, len(quantities)*page.PageSize)
	for _, q := range quantities {
		var p page.LineitemPageQ1
		p.AppendTuple(page.Tuple{
			ShipDate:      types.MustParseDate("1998-01-01", 0),
			ReturnFlag:    types.ReturnFlagA,
			LineStatus:    types.LineStatusF,
			Quantity:      q,
			ExtendedPrice: q,
			Discount:      0,
			Tax:           0,
		})
		buf := make([]byte, page.PageSize)
		copy(buf, page.Bytes(&p))
		data = append(data, buf...)
	}
	return data
}

func makeSwips(numPages int) []swip.Swip {
	swips := make([]swip.Swip, numPages)
	for i := range swips {
		swips[i] = swip.MakePageIndex(types.PageIndex(i))
	}
	return swips
}

func TestPopulateResolvesEveryRequestedSwip(t *testing.T) {
	requireT := require.New(t)

	data := buildPages(t, 10, 20, 30)
	file := iofile.NewMemFile(data, page.PageSize)
	swips := makeSwips(3)

	c := cache.NewWithRing(swips, file, ioring.NewFake)
	requireT.NoError(c.Populate([]uint64{0, 1, 2}))

	for i, s := range swips {
		requireT.False(s.IsPageIndex(), "swip %d should be resolved", i)
		frame := swip.GetPointer[page.LineitemPageQ1](s)
		requireT.EqualValues(1, frame.NumTuples)
	}
	requireT.Equal("0.10", swip.GetPointer[page.LineitemPageQ1](swips[0]).Quantity(0).String())
	requireT.Equal("0.20", swip.GetPointer[page.LineitemPageQ1](swips[1]).Quantity(0).String())
	requireT.Equal("0.30", swip.GetPointer[page.LineitemPageQ1](swips[2]).Quantity(0).String())
}

func TestPopulateWithEmptyIndexesIsNoOp(t *testing.T) {
	requireT := require.New(t)

	data := buildPages(t, 10)
	file := iofile.NewMemFile(data, page.PageSize)
	swips := makeSwips(1)

	c := cache.NewWithRing(swips, file, ioring.NewFake)
	requireT.NoError(c.Populate(nil))
	requireT.True(swips[0].IsPageIndex())
}

func TestPopulateExceedsFanOutWithoutLosingAnyFrame(t *testing.T) {
	requireT := require.New(t)

	const numPages = 200
	quantities := make([]int64, numPages)
	for i := range quantities {
		quantities[i] = int64(i)
	}
	data := buildPages(t, quantities...)
	file := iofile.NewMemFile(data, page.PageSize)
	swips := makeSwips(numPages)

	indexes := make([]uint64, numPages)
	for i := range indexes {
		indexes[i] = uint64(i)
	}

	c := cache.NewWithRing(swips, file, ioring.NewFake)
	requireT.NoError(c.Populate(indexes))

	for i, s := range swips {
		requireT.False(s.IsPageIndex())
		frame := swip.GetPointer[page.LineitemPageQ1](s)
		requireT.Equal(int64(i), frame.LQuantity[0])
	}
}
