package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// AllCollections lists every portal collection name.
var AllCollections = []string{CollectionUsers, CollectionLectures, CollectionAssignments, CollectionSubmissions}

// CopyResult describes what happened to one collection during a copy.
type CopyResult struct {
	Name    string
	Records int
	Skipped bool
	Reason  string
}

// CopyCollections moves whole documents from src to dst. Collections missing
// at the source are skipped; a document that is not a JSON array stops the
// copy so a corrupt source never overwrites a healthy destination.
func CopyCollections(ctx context.Context, src, dst CollectionStore, names []string) ([]CopyResult, error) {
	results := make([]CopyResult, 0, len(names))
	for _, name := range names {
		raw, err := src.Read(ctx, name)
		if err != nil {
			if errors.Is(err, appErrors.ErrCollectionMissing) {
				results = append(results, CopyResult{Name: name, Skipped: true, Reason: "missing at source"})
				continue
			}
			return results, fmt.Errorf("read %s: %w", name, err)
		}

		var records []json.RawMessage
		if err := json.Unmarshal(raw, &records); err != nil {
			return results, fmt.Errorf("collection %s is not a JSON array: %w", name, err)
		}
		if err := dst.Write(ctx, name, raw); err != nil {
			return results, fmt.Errorf("write %s: %w", name, err)
		}
		results = append(results, CopyResult{Name: name, Records: len(records)})
	}
	return results, nil
}
