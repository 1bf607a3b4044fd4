// Package attrs provides reusable OpenTelemetry attribute key constants
// for the telemetry decorators, avoiding duplication between the
// registry and view-data instrumentation.
package attrs

const (
	// AttrMeasureName is the name argument a registry call was made with.
	AttrMeasureName = "measure.name"
	// AttrMeasureType is the measure.Type a registration produced.
	AttrMeasureType = "measure.type"
	// AttrTagArity is the number of tag values passed to Add.
	AttrTagArity = "tags.arity"
	// AttrAggregationKind is the view.AggregationKind a Data instance holds.
	AttrAggregationKind = "aggregation.kind"
	// AttrRowCount is the number of rows a Snapshot or Copy produced.
	AttrRowCount = "rows.count"
)
