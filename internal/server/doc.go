// Package server exposes a linked database over HTTP.
//
// Routes:
//
//	GET /healthz
//	GET /metrics
//	GET /v1/stats
//	GET /v1/neos/:designation
//	GET /v1/neos?name=Eros
//	GET /v1/approaches?start_date=2020-01-01&hazardous=true&limit=20&format=csv
//
// /v1/approaches accepts the same criteria keys as filter.Parse. limit
// defaults to neodb.DefaultLimit; format is one of json (default), csv, yaml
// or xlsx.
package server
