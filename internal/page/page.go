// Package page defines the on-disk page layout scanned by the query engine.
package page

import (
	"unsafe"

	"github.com/outofforest/photon"

	"github.com/outofforest/morselq1/internal/types"
)

const (
	// PageSizePower is the build-time page-size exponent: pages are 2^PageSizePower
	// bytes. 14 => 16 KiB pages.
	PageSizePower = 14

	// PageSize is the size in bytes of one page.
	PageSize = 1 << PageSizePower

	// KMaxNumTuples is the maximum number of tuples a page can hold. Chosen so that
	// the fixed arrays below fit comfortably inside PageSize.
	KMaxNumTuples = 322
)

// Scales of the columns that carry fixed-point values.
const (
	ScaleQuantity      = 2
	ScaleExtendedPrice = 2
	ScaleDiscount      = 2
	ScaleTax           = 2
)

// LineitemPageQ1 is a columnar slice of the lineitem relation: a fixed-size,
// pointer-free struct so it can be cast directly to/from raw page bytes via photon.
// Trailing padding makes it exactly PageSize bytes, one whole on-disk page.
type LineitemPageQ1 struct {
	lineitemColumns
	_ [PageSize - unsafe.Sizeof(lineitemColumns{})]byte
}

// lineitemColumns holds the fields of LineitemPageQ1, promoted through embedding.
type lineitemColumns struct {
	NumTuples uint32
	_         [4]byte // padding to keep the arrays 8-byte aligned

	LShipdate      [KMaxNumTuples]types.Date
	LReturnflag    [KMaxNumTuples]byte
	LLinestatus    [KMaxNumTuples]byte
	_              [2]byte // padding
	LQuantity      [KMaxNumTuples]int64
	LExtendedprice [KMaxNumTuples]int64
	LDiscount      [KMaxNumTuples]int64
	LTax           [KMaxNumTuples]int64
}

// SizeOf is the in-memory size of LineitemPageQ1, equal to PageSize, the size of
// one on-disk page.
var SizeOf = int(unsafe.Sizeof(LineitemPageQ1{}))

// Bytes reinterprets the page as a raw byte slice of length SizeOf, suitable for
// passing to a pread/io_uring read call.
func Bytes(p *LineitemPageQ1) []byte {
	return photon.SliceFromPointer[byte](unsafe.Pointer(p), SizeOf)
}

func init() {
	if SizeOf > PageSize {
		panic("page: LineitemPageQ1 does not fit inside PageSize")
	}
}
