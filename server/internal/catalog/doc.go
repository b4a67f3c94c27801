// Package catalog holds the reference glider models: line plan, manufacturer
// reference lengths and line materials, one YAML file per glider size.
//
// The catalog is read once at startup and, when watching is enabled, again
// whenever a file in its directory changes. A failed reload keeps the
// previous models.
package catalog
