// Package model defines the records held by a neodb database.
//
// # Records
//
//   - NearEarthObject: a small body identified by its primary designation
//   - CloseApproach: one recorded passage of an NEO near Earth
//
// Records are created unlinked by the constructors in this package:
//
//	neo, err := model.NewNearEarthObject("433", "Eros", "16.84", "N")
//	ca, err := model.NewCloseApproach("433", "2020-Jan-01 00:00", "0.15", "5.0")
//
// The database constructor resolves every CloseApproach.Designation into a
// CloseApproach.NEO reference and fills NearEarthObject.Approaches. After
// that the graph is read-only.
package model
