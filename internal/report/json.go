package report

import (
	"encoding/json"
	"fmt"

	"github.com/everinsight/discprofile/internal/model"
)

// ExportJSON serializes a session record as a single line of JSON,
// the same shape used for download and for the session log.
func ExportJSON(rec model.SessionRecord) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal session record: %w", err)
	}
	return data, nil
}

// ParseRecord parses a session record produced by ExportJSON.
func ParseRecord(data []byte) (model.SessionRecord, error) {
	var rec model.SessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.SessionRecord{}, fmt.Errorf("parse session record: %w", err)
	}
	return rec, nil
}
