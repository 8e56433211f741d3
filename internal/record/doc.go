// Package record converts books to and from the one-line text form used by
// the library backing file.
//
// A line holds five comma separated fields in a fixed order:
//
//	title,author,year,genre,readStatus
//
// readStatus is written as "True" or "False" and read back with a
// case-insensitive comparison against "true". There is no header, no
// escaping and no version marker, so text fields must not contain a comma
// or a line break. Format and Validate reject such books instead of writing
// a line that would not parse back.
package record
