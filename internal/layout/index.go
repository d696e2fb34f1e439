package layout

import "fmt"

// MalformedGraphError reports an internally inconsistent block graph: a
// duplicate block id, or a relationship referencing an id that is not in the
// collection. The caller must treat it as fatal for the document.
type MalformedGraphError struct {
	ID     string
	Reason string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("malformed block graph: %s: %q", e.Reason, e.ID)
}

// blockIndex maps block id to block for O(1) relationship resolution.
type blockIndex map[string]*Block

// buildIndex indexes blocks by id. Duplicate ids fail fast instead of letting
// a later block silently shadow an earlier one.
func buildIndex(blocks []Block) (blockIndex, error) {
	idx := make(blockIndex, len(blocks))
	for i := range blocks {
		b := &blocks[i]
		if _, dup := idx[b.ID]; dup {
			return nil, &MalformedGraphError{ID: b.ID, Reason: "duplicate block id"}
		}
		idx[b.ID] = b
	}
	return idx, nil
}

// resolve looks up a referenced block id.
func (idx blockIndex) resolve(id string) (*Block, error) {
	b, ok := idx[id]
	if !ok {
		return nil, &MalformedGraphError{ID: id, Reason: "relationship references unknown block id"}
	}
	return b, nil
}
