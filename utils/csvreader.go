package utils

import (
	"bufio"
	"encoding/csv"
	"io"
	"strings"
)

// ParseCSV reads all rows. Exports from French spreadsheet tools often
// use ';' as the separator, so the delimiter is sniffed from the first
// line.
func ParseCSV(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(1024)
	if err != nil && err != io.EOF {
		return nil, err
	}

	reader := csv.NewReader(br)
	if firstLine, _, _ := strings.Cut(string(head), "\n"); strings.Count(firstLine, ";") > strings.Count(firstLine, ",") {
		reader.Comma = ';'
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return records, nil
}
