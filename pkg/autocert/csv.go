package autocert

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadCSV reads and parses a CSV file, returning the data as a slice of string slices.
// Each inner slice represents a row of the CSV.
func ReadCSV(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer file.Close()

	return ReadCSVFromReader(file)
}

// ReadCSVFromReader is the RFC 4180 reader used for server side uploads.
// Rows may have a different number of fields than the header.
func ReadCSVFromReader(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return records, nil
}

// Reads a CSV file and returns the data as a slice of maps.
// The first row is assumed to be the header, and its values are used as keys.
//
//	call records, err := ReadCSV(filename)
//
//	if err != nil {
//		return nil, err
//	}
func ParseCSVToMap(records [][]string) ([]map[string]string, error) {
	if len(records) == 0 {
		return []map[string]string{}, nil
	}

	headers := make([]string, len(records[0]))
	copy(headers, records[0])
	headerCount := make(map[string]int)

	// Check for duplicate headers and rename them
	for i, header := range headers {
		header = strings.TrimPrefix(strings.TrimSpace(header), "\ufeff")
		headers[i] = header
		if count, exists := headerCount[header]; exists {
			headerCount[header]++
			headers[i] = fmt.Sprintf("%s_%d", header, count+1)
		} else {
			headerCount[header] = 0
		}
	}

	result := make([]map[string]string, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		row := make(map[string]string)
		for j := 0; j < len(headers); j++ {
			if j < len(records[i]) {
				row[headers[j]] = strings.TrimSpace(records[i][j])
			} else {
				row[headers[j]] = ""
			}
		}
		result = append(result, row)
	}

	return result, nil
}

// Columns whose value names the participant, in priority order.
var nameColumns = []string{"name", "participant", "participant name"}

// ParseParticipants turns raw CSV text into participant records.
//
// The first line is the header. Fields are split on plain commas; quoted commas and
// embedded newlines are not supported. A data row is kept only when it has at least as
// many fields as the header and one of the name columns is non-empty.
func ParseParticipants(text string) ([]Participant, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: CSV file must have at least a header and one data row", ErrFormat)
	}

	headers := splitParticipantLine(lines[0])
	columns := make([]string, 0, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		h = strings.ToLower(h)
		headers[i] = h
		if !seen[h] {
			seen[h] = true
			columns = append(columns, h)
		}
	}

	participants := make([]Participant, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitParticipantLine(line)
		if len(values) < len(headers) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = values[i]
		}

		p, ok := newParticipant(fields, columns)
		if !ok {
			continue
		}
		participants = append(participants, p)
	}

	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: no valid participants found in CSV", ErrFormat)
	}

	return participants, nil
}

// ParseParticipantsReader reads the whole input and parses it with ParseParticipants.
func ParseParticipantsReader(r io.Reader) ([]Participant, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return ParseParticipants(string(b))
}

func splitParticipantLine(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(strings.TrimSpace(p), `"`, "")
	}
	return parts
}
