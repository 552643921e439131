package utils

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"event_rsvp/internal/model"
)

var headerNames = map[string]bool{"nome": true, "name": true, "convidado": true, "guest": true}

// ParseGuestCSV reads "name,phone" rows. The delimiter may be ',' or ';'
// (detected from the first line) and a header row is skipped when present.
func ParseGuestCSV(r io.Reader) ([]model.ImportRow, error) {
	br := bufio.NewReader(r)
	firstLine, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(string(firstLine))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var rows []model.ImportRow
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}

		if first {
			first = false
			if isHeaderRecord(record) {
				continue
			}
		}
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		phone := strings.TrimSpace(record[1])
		if name == "" && phone == "" {
			continue
		}
		rows = append(rows, model.ImportRow{Name: name, Phone: phone})
	}
	return rows, nil
}

func detectDelimiter(head string) rune {
	if i := strings.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}
	if strings.Count(head, ";") > strings.Count(head, ",") {
		return ';'
	}
	return ','
}

func isHeaderRecord(record []string) bool {
	if len(record) == 0 {
		return false
	}
	if headerNames[strings.ToLower(strings.TrimSpace(record[0]))] {
		return true
	}
	return len(record) >= 2 && NormalizePhone(record[1]) == ""
}
