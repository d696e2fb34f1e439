package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/layoutchunk/internal/layout"
)

// AnalysisParser handles a saved analysis response: a JSON document holding
// either {"Blocks": [...]} or a bare block array. The blocks run through the
// layout reconstructor exactly as if they had been fetched from the service.
type AnalysisParser struct {
	Options layout.Options
}

func (p *AnalysisParser) Parse(r io.Reader, filename, documentID string) ([]layout.Chunk, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Blocks []layout.Block `json:"Blocks"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Blocks != nil {
		return layout.ReconstructWithOptions(wrapped.Blocks, documentID, p.Options)
	}

	// Fall back to a bare block array.
	var blocks []layout.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("decode analysis json: %w", err)
	}
	return layout.ReconstructWithOptions(blocks, documentID, p.Options)
}
