package catalog

import "streamhaven/models"

// Merge combines result batches into a unique-by-identity ordered list.
// Batches are walked in the given order; the first occurrence of each
// (ID, Kind) wins positionally and later duplicates are dropped. The same
// title often appears in several source categories, so this must be
// deterministic and order stable. Inputs are never mutated.
func Merge(batches ...[]models.MediaItem) []models.MediaItem {
	size := 0
	for _, b := range batches {
		size += len(b)
	}
	merged := make([]models.MediaItem, 0, size)
	seen := make(map[models.MediaKey]struct{}, size)
	for _, batch := range batches {
		for _, item := range batch {
			key := item.Key()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged
}

// AppendPage merges a newly fetched page into an accumulated list, preserving
// the existing order and appending only first-seen items from the new page.
func AppendPage(existing, page []models.MediaItem) []models.MediaItem {
	return Merge(existing, page)
}
