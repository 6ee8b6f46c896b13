package mdwrap

import "strings"

const tableOpenTag = `<table style="width:100%; word-break: break-word; white-space: normal;">`

// appendTable flushes a buffered pipe table. Tables that fit the width are
// kept as-is; wider ones become HTML table markup when conversion is enabled.
// Delimiter rows are dropped and the first remaining row becomes the header. A
// buffer of delimiter rows alone is kept as-is.
func appendTable(out []string, table []string, width int, convert bool) []string {
	if len(table) == 0 {
		return out
	}
	if !convert || !tableTooWide(table, width) {
		return append(out, table...)
	}
	rows := make([]string, 0, len(table))
	for _, line := range table {
		if !isTableSeparator(line) {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return append(out, table...)
	}
	return appendHTMLTable(out, rows)
}

func tableTooWide(table []string, width int) bool {
	for _, line := range table {
		if len(line) > width {
			return true
		}
	}
	return false
}

func appendHTMLTable(out []string, rows []string) []string {
	out = append(out, tableOpenTag, "  <thead>", "    <tr>")
	for _, cell := range splitCells(rows[0]) {
		out = append(out, "      <th>"+cell+"</th>")
	}
	out = append(out, "    </tr>", "  </thead>")
	if len(rows) > 1 {
		out = append(out, "  <tbody>")
		for _, row := range rows[1:] {
			out = append(out, "    <tr>")
			for _, cell := range splitCells(row) {
				out = append(out, "      <td>"+cell+"</td>")
			}
			out = append(out, "    </tr>")
		}
		out = append(out, "  </tbody>")
	}
	return append(out, "</table>")
}

// splitCells splits a row on every pipe after removing the outer pipes.
// Escaped pipes are not recognized.
func splitCells(row string) []string {
	row = strings.Trim(strings.TrimSpace(row), "|")
	cells := strings.Split(row, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}
