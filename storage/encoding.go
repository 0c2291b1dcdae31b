package storage

import (
	"github.com/apache/arrow/go/v12/arrow"

	"github.com/lance-io/lance-bridge/common/constant"
)

type EncodingStrategy int8

const (
	EncodingFixedWidth EncodingStrategy = iota
	EncodingDictionary
	EncodingVariableWidth
)

func (s EncodingStrategy) String() string {
	switch s {
	case EncodingFixedWidth:
		return "fixed-width"
	case EncodingDictionary:
		return "dictionary"
	default:
		return "variable-width"
	}
}

// ColumnEncoding is the per-column encoding hint derived from the declared
// type. FastPath marks columns whose strategy needs no runtime heuristic.
type ColumnEncoding struct {
	Name     string
	Type     arrow.DataType
	Strategy EncodingStrategy
	FastPath bool
}

// PlanEncoding derives the encoding strategy for every column of a schema.
// It is pure and total: every field maps to exactly one strategy. All
// accumulated batches share one schema by construction, so the plan is
// computed once per finalize and applied uniformly.
func PlanEncoding(schema *arrow.Schema) []ColumnEncoding {
	plan := make([]ColumnEncoding, 0, len(schema.Fields()))
	for _, field := range schema.Fields() {
		plan = append(plan, planField(field))
	}
	return plan
}

func planField(field arrow.Field) ColumnEncoding {
	switch field.Type.ID() {
	case arrow.INT8, arrow.UINT8, arrow.INT16, arrow.UINT16,
		arrow.INT32, arrow.UINT32, arrow.INT64, arrow.UINT64,
		arrow.FLOAT32, arrow.FLOAT64,
		arrow.DECIMAL128, arrow.DECIMAL256,
		arrow.DATE32, arrow.DATE64, arrow.TIME32, arrow.TIME64,
		arrow.TIMESTAMP, arrow.DURATION:
		return ColumnEncoding{Name: field.Name, Type: field.Type, Strategy: EncodingFixedWidth, FastPath: true}
	case arrow.STRING, arrow.LARGE_STRING:
		return ColumnEncoding{Name: field.Name, Type: field.Type, Strategy: EncodingDictionary, FastPath: false}
	default:
		return ColumnEncoding{Name: field.Name, Type: field.Type, Strategy: EncodingVariableWidth, FastPath: false}
	}
}

// HintedSchema copies the schema, attaching encoding hints as field metadata
// on fast-path columns only.
func HintedSchema(schema *arrow.Schema, plan []ColumnEncoding) *arrow.Schema {
	fields := make([]arrow.Field, len(schema.Fields()))
	for i, field := range schema.Fields() {
		if plan[i].FastPath {
			field.Metadata = arrow.NewMetadata(
				[]string{constant.EncodingMetadataKey, constant.FastPathMetadataKey},
				[]string{plan[i].Strategy.String(), "true"},
			)
		}
		fields[i] = field
	}
	return arrow.NewSchema(fields, nil)
}
