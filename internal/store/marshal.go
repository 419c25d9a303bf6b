package store

import (
	"encoding/json"
	"fmt"

	"github.com/andyapp/andy/internal/model"
)

// marshalScores converts a criterion score map to JSON TEXT for
// storage. Unscored criteria serialize as explicit nulls so the
// stored document always lists every criterion.
func marshalScores(scores map[string]*int) (string, error) {
	if scores == nil {
		scores = model.EmptyScores()
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("marshal scores: %w", err)
	}
	return string(data), nil
}

// unmarshalScores parses JSON TEXT to a score map. Criteria missing
// from the stored document come back as unscored, so rows written by
// older schema versions still load with the full criterion set.
func unmarshalScores(data string) (map[string]*int, error) {
	scores := model.EmptyScores()
	if data == "" || data == "{}" {
		return scores, nil
	}
	var stored map[string]*int
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	for k, v := range stored {
		scores[k] = v
	}
	return scores, nil
}
