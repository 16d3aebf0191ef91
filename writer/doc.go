// Package writer serializes query results.
//
// Every format carries the same fields per close approach: datetime_utc,
// distance_au, velocity_km_s and the linked NEO's designation, name,
// diameter_km and potentially_hazardous. CSV and XLSX flatten the NEO into
// columns; JSON and YAML nest it under "neo".
//
// An unknown diameter is written as "nan" in CSV, null in JSON and YAML, and
// an empty cell in XLSX. An approach without a linked NEO keeps its own
// designation and leaves the NEO fields empty (null in JSON and YAML).
package writer
