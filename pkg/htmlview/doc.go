// Package htmlview renders records into HTML fragments: a read-only display
// view built from nested tables, or an editable form view whose controls and
// validation attributes derive from each field's declared type and constraint
// metadata. Output is deterministic, fully escaped, and bounded by an
// optional recursion depth cap.
package htmlview
