// Package render turns a page of display records into a view model.
//
// Rendering is pure: Render never fetches or mutates state. Adapters map
// their own events to Control values, move the session's page cursor and
// render again.
package render
