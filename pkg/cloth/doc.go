// Package cloth judges canopy cloth test points against the APPI porosity and
// tear-resistance thresholds and summarizes a session's points.
package cloth
