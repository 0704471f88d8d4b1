package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Tokens treated as missing regardless of column type (case-insensitive
// for the alphabetic forms).
var missingTokens = map[string]struct{}{
	"": {}, "na": {}, "nan": {}, ".": {},
}

func isMissingToken(s string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// FromCSV reads a header-first CSV stream into a Dataset. A column is
// numeric when every non-missing token parses as a float; otherwise it
// stays categorical text. Malformed rows (wrong field count) are skipped
// rather than aborting the load.
func FromCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row length validated manually, bad rows skipped

	headers, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dataset: reading CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	raw := make([][]string, len(headers))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if len(rec) != len(headers) {
			continue
		}
		for i, tok := range rec {
			raw[i] = append(raw[i], strings.TrimSpace(tok))
		}
	}

	cols := make([]Column, len(headers))
	for i, name := range headers {
		cols[i] = buildColumn(name, raw[i])
	}
	return FromColumns(cols)
}

// buildColumn types a raw token slice: numeric iff all non-missing
// tokens parse, with at least one non-missing token present.
func buildColumn(name string, tokens []string) Column {
	numeric := false
	nonMissing := 0
	parsed := make([]float64, len(tokens))
	allParse := true
	for i, tok := range tokens {
		if isMissingToken(tok) {
			continue
		}
		nonMissing++
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			allParse = false
			continue
		}
		parsed[i] = f
	}
	numeric = allParse && nonMissing > 0

	vals := make([]Value, len(tokens))
	for i, tok := range tokens {
		if isMissingToken(tok) {
			vals[i] = Value{Str: tok, Missing: true}
			continue
		}
		vals[i] = Value{Str: tok, Num: parsed[i], Numeric: numeric}
	}
	return Column{Name: name, Numeric: numeric, Values: vals}
}
