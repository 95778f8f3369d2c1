// Package unshortener appends the resolved destination of a URL column to a
// CSV document. It owns the CSV parsing and writing rules and delegates the
// network lookups to a resolver.Resolver.
package unshortener

import "context"

//go:generate mockgen -package mockunshortener -source=interface.go -destination=mock/mockunshortener.go *
type Unshortener interface {
	// Header returns the first record of in.
	Header(in []byte) ([]string, error)
	// Transform returns in with an extra "Unshortened URL" column holding,
	// for every data row, the resolved URL of the cell at column or an error text.
	Transform(ctx context.Context, in []byte, column int) ([]byte, error)
}
