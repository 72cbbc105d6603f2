// Package reducer shrinks one JPEG in place.
//
// A Reducer reads the file once, keeps its EXIF blob, asks the planner how
// many box-filter passes to run, re-encodes at a fixed quality and replaces
// the original through a rename. Every outcome, including failures and
// recovered panics, is returned as a Result; nothing escapes to the caller,
// so one bad file cannot stop a batch.
package reducer
