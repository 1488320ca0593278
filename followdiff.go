// Package followdiff reads a personal Instagram data export, extracts the
// relationship lists it contains (followers, following, follow requests)
// and computes set differences over them, most notably the accounts you
// follow that do not follow you back.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, zip/).
package followdiff
