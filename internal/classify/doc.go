// Package classify tags target columns as custom or system fields and ranks
// them for conflict resolution.
//
// Classification is a pure function of the column name: an exact,
// case-insensitive dictionary lookup of well-known platform housekeeping
// fields, then a vendor namespace prefix check, then "custom".
//
// Priority is a static lookup keyed by category. Lower values are resolved
// first; custom fields always come first.
package classify
