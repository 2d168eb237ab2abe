package flatmap

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// LoadAnnotations reads a CSV mapping ontology terms to group names and
// returns the reverse lookup, group name to term. A file whose header is
// not exactly "Term ID","Group name", or with any record not holding
// exactly two fields, is not an annotation file; the whole file is ignored
// and nil comes back. Later records override earlier ones naming the same
// group.
func LoadAnnotations(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading annotations: %w", err)
	}
	return parseAnnotations(data), nil
}

func parseAnnotations(data []byte) map[string]string {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	header := records[0]
	if len(header) != 2 || header[0] != "Term ID" || header[1] != "Group name" {
		return nil
	}
	for _, rec := range records[1:] {
		if len(rec) != 2 {
			return nil
		}
	}

	annotations := make(map[string]string, len(records)-1)
	for _, rec := range records[1:] {
		annotations[rec[1]] = rec[0]
	}
	return annotations
}
