package types

// PageIndex identifies a fixed-size page within the paged column-store file.
type PageIndex uint64
