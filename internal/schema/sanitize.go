package schema

import "regexp"

// Dump tools emit version-gated conditional comment directives like
//
//	/*!40101 SET @OLD_CHARACTER_SET_CLIENT=@@CHARACTER_SET_CLIENT */;
//
// around schema statements. They are artifacts of the dump tool, not part of
// the intended schema, and are not portable, so they are stripped before the
// contents are treated as executable SQL. A directive block is terminated by
// "*/;" and may be followed by blank lines.
var dumpDirective = regexp.MustCompile(`(?s)/\*!.*?\*/;[ \t]*\n*`)

// StripDumpDirectives removes engine-generated conditional comment blocks.
// A string with no such directives is returned unchanged.
func StripDumpDirectives(s string) string {
	return dumpDirective.ReplaceAllString(s, "")
}
