// Package mdwrap rewraps Markdown prose to a fixed byte width.
//
// The formatter makes a single forward pass over a document. Each line is
// classified and only the classes that can be safely reflowed are rewritten.
// Fenced and indented code, headings, HTML lines, thematic breaks, leading
// front matter and narrow tables pass through byte for byte. Tables wider than
// the limit are converted to HTML table markup because pipe tables cannot be
// rewrapped without breaking column alignment.
//
// Widths are measured in UTF-8 bytes, not display columns. Formatting is
// idempotent: formatting already formatted output returns it unchanged.
//
// Example:
//
//	out, err := mdwrap.FormatBytes(src, mdwrap.WithWidth(100))
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.Stdout.Write(out)
package mdwrap
