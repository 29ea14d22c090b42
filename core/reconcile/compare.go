package reconcile

import (
	"path"

	"content-sweeper/core/scanner"
	"content-sweeper/core/storage"
)

// Entry is a stored object classified by a comparison.
type Entry struct {
	ID   string
	Key  string
	Size int64
}

// Result partitions the stored objects into referenced and orphaned entries.
type Result struct {
	Referenced []Entry
	Orphaned   []Entry

	TotalObjects      int
	TotalContentFiles int
	// TotalReferences counts distinct referenced object ids.
	TotalReferences int
	OrphanedBytes   int64
}

// ObjectID returns the identity used for comparison: the filename part of key.
// Keys in different prefixes sharing a filename map to the same id.
func ObjectID(key string) string {
	return path.Base(key)
}

// ObjectIDs returns the distinct ids of objects in listing order.
func ObjectIDs(objects []storage.Object) []string {
	seen := make(map[string]struct{}, len(objects))
	ids := make([]string, 0, len(objects))
	for _, obj := range objects {
		if storage.IsDirectoryMarker(obj.Key) {
			continue
		}
		id := ObjectID(obj.Key)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// Compare marks every object whose id appears in refs and sweeps the rest into
// Orphaned. Both lists follow the order of objects.
func Compare(objects []storage.Object, refs []scanner.Reference, contentFiles int) Result {
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref.ObjectID] = struct{}{}
	}

	result := Result{
		TotalContentFiles: contentFiles,
		TotalReferences:   len(referenced),
	}

	for _, obj := range objects {
		if storage.IsDirectoryMarker(obj.Key) {
			continue
		}
		result.TotalObjects++

		entry := Entry{ID: ObjectID(obj.Key), Key: obj.Key, Size: obj.Size}
		if _, ok := referenced[entry.ID]; ok {
			result.Referenced = append(result.Referenced, entry)
			continue
		}
		result.Orphaned = append(result.Orphaned, entry)
		result.OrphanedBytes += obj.Size
	}

	return result
}
