package minarrow

import (
	"fmt"

	"github.com/minarrow-go/minarrow/pkg/contracts"
)

// Field describes a column's name, logical type, nullability and
// metadata, independent of any actual data (spec §3.6), mirroring the
// shape of arrow.Field used throughout the example pack's schema layer
// (e.g. the teacher's pkg/internal/schema.go construction of
// arrow.NewSchema(fields, &metadata)).
type Field struct {
	Name     string
	Type     contracts.DType
	Nullable bool
	Metadata contracts.Metadata
}

// NewField builds a Field with empty metadata.
func NewField(name string, dtype contracts.DType, nullable bool) Field {
	return Field{Name: name, Type: dtype, Nullable: nullable}
}

// WithMetadata returns a copy of f carrying the given metadata.
func (f Field) WithMetadata(m contracts.Metadata) Field {
	f.Metadata = m
	return f
}

// FieldArray pairs a Field with the Array holding its actual data (spec
// §3.7). Every Table column is a FieldArray.
type FieldArray struct {
	Field Field
	Data  Array
}

// NewFieldArray builds a FieldArray, panicking if the array's null
// positions are inconsistent with a non-nullable field or if the field's
// dtype cannot live in the array's union Kind — programmer errors caught
// eagerly rather than surfacing later as silent data corruption (spec
// §7.1). The import path runs the same checks through
// validateFieldArray and returns the failure instead, since there the
// mismatched shape comes from a foreign producer, not this process.
func NewFieldArray(field Field, data Array) FieldArray {
	if err := validateFieldArray(field, data); err != nil {
		panic("minarrow: " + err.Error())
	}
	return FieldArray{Field: field, Data: data}
}

// validateFieldArray checks the Field/Array pairing invariants of spec
// §3.6: a non-nullable field's array carries no nulls, and the field's
// dtype belongs to the same semantic family as the array's Kind.
func validateFieldArray(field Field, data Array) error {
	if !field.Nullable && data.HasNulls() {
		return fmt.Errorf("field %q is declared non-nullable but its array contains %d nulls", field.Name, data.NullCount())
	}
	if !dtypeMatchesKind(field.Type, data.Kind) {
		return fmt.Errorf("field %q has dtype %s, which array kind %d cannot hold", field.Name, field.Type, data.Kind)
	}
	return nil
}

func dtypeMatchesKind(d contracts.DType, k ArrayKind) bool {
	switch k {
	case KindNumeric:
		return d.IsNumeric()
	case KindText:
		return d.IsText()
	case KindTemporal:
		return d.IsTemporal()
	case KindBoolean:
		return d.ID == contracts.Boolean
	case KindNull:
		return d.ID == contracts.Null
	default:
		return false
	}
}

// Len returns the column's row count.
func (fa FieldArray) Len() int { return fa.Data.Len() }
