// Package swip implements the buffer-reference abstraction: a value that
// resolves either to an on-disk page index or to an in-memory frame.
package swip

import (
	"unsafe"

	"github.com/outofforest/morselq1/internal/types"
)

type tag uint8

const (
	tagPageIndex tag = iota
	tagPointer
)

// Swip is a buffer reference: either an unresolved page index, or a resolved
// pointer to an in-memory frame. Its logical identity (the page it refers to) never
// changes across resolution.
//
// A true single-word tagged pointer (stealing the low address bit) is not
// sound in Go: the garbage collector must be able to identify every live
// pointer-shaped word unambiguously, and a disguised pointer stored as an
// integer is invisible to it. Swip instead keeps ptr as a real, GC-visible
// pointer (nil until resolved) alongside an explicit tag.
type Swip struct {
	t     tag
	index types.PageIndex
	ptr   unsafe.Pointer
}

// MakePageIndex creates an unresolved Swip carrying a page index.
func MakePageIndex(i types.PageIndex) Swip {
	return Swip{t: tagPageIndex, index: i}
}

// MakePointer creates a resolved Swip pointing directly at an in-memory frame.
func MakePointer[T any](p *T) Swip {
	return Swip{t: tagPointer, ptr: unsafe.Pointer(p)}
}

// IsPageIndex reports whether the Swip is still unresolved.
func (s Swip) IsPageIndex() bool {
	return s.t == tagPageIndex
}

// GetPageIndex returns the page index. Calling it on a resolved Swip is
// undefined behavior.
func (s Swip) GetPageIndex() types.PageIndex {
	return s.index
}

// GetPointer returns the resolved frame. Calling it on an unresolved Swip is
// undefined behavior.
func GetPointer[T any](s Swip) *T {
	return (*T)(s.ptr)
}

// SetPointer resolves the Swip in place, transitioning it from page-index form to
// pointer form. There is no demotion.
func (s *Swip) SetPointer(p unsafe.Pointer) {
	s.ptr = p
	s.t = tagPointer
}
