package query

import "github.com/outofforest/morselq1/internal/types"

func mustHighDate() types.Date {
	return types.MustParseDate("1998-09-02|", '|')
}
