// Package carousel extracts structured list data from the result carousel of
// a saved Google search results page. It renders the page in a headless
// browser, locates the carousel widget, resolves the list title and parses
// every carousel entry into an item record.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package carousel
