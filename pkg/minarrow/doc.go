// Package minarrow is the public facade of the columnar array library: the
// closed family of inner array variants from pkg/internal/arrays, wrapped
// in the two layers of tagged union (NumericArray/TextArray/TemporalArray,
// then the top-level Array), plus Field/FieldArray/Table and the zero-copy
// ArrayView/TableView windowing layer. It is the only package most callers
// need to import; pkg/cdata and pkg/internal/* are implementation detail.
package minarrow

import "github.com/minarrow-go/minarrow/pkg/contracts"

// maskedArray is a package-local alias of contracts.MaskedArray, used by
// the union types' Len/NullCount/IsNull/HasNulls methods.
type maskedArray = contracts.MaskedArray
