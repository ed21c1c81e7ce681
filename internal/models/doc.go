// Package models defines domain entities for the Museick client core.
//
// The package contains two categories of types:
//
// 1. Durable records owned by the backend:
//   - [Selection] : A user's per-month pick, created as a candidate and
//     promoted to selected. The backend assigns ids and timestamps.
//
// 2. Value types constructed at the API boundary:
//   - [CatalogItem] : Tagged variant over track/album/artist search results
//   - [Role], [Axis] : The two-axis candidate/selected lifecycle
//   - [ItemType], [MonthKey] : Validated identifiers
//
// The lifecycle invariants live here: [ValidTransition] rejects cross-axis
// role changes, and at most one record per (user, month, item type, axis) may
// hold a selected role. The backend is the final authority on that
// constraint.
package models
