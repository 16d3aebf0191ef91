// Package filter provides the predicate filter set used to select close approaches.
//
// A Criteria value holds up to ten optional criteria. Compile turns the
// criteria that are present into a Set of Filters, which are combined by
// logical AND:
//
//	fs := filter.Criteria{
//	    StartDate:   filter.Ptr(filter.On(2020, time.January, 1)),
//	    DistanceMax: filter.Ptr(0.1),
//	    Hazardous:   filter.Ptr(true),
//	}.Compile()
//
// Filters can also be assembled directly:
//
//	fs := filter.And(
//	    filter.Gte(filter.FieldVelocity, filter.FloatValue(20)),
//	    filter.Eq(filter.FieldHazardous, filter.BoolValue(false)),
//	)
//
// # Semantics
//
//   - Date criteria compare the calendar date (UTC) of the approach; the
//     time of day is ignored.
//   - Diameter and hazardous criteria read the linked NEO. An approach
//     without a linked NEO fails them.
//   - Unknown diameters are NaN and therefore fail every diameter bound.
//   - An empty Set matches every approach.
package filter
