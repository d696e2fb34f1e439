package layout

// ChunkType classifies a chunk's content for downstream filtering.
type ChunkType string

const (
	ChunkTable         ChunkType = "table"
	ChunkTextBlock     ChunkType = "text_block"
	ChunkTitle         ChunkType = "title"
	ChunkHeader        ChunkType = "header"
	ChunkSectionHeader ChunkType = "section_header"
	ChunkText          ChunkType = "text"
	ChunkList          ChunkType = "list"
)

// Metadata is the provenance attached to every chunk. Page is omitted for
// sources that have no page concept (word-processing documents).
type Metadata struct {
	DocumentID string    `json:"document_id"`
	Page       int       `json:"page,omitempty"`
	Type       ChunkType `json:"type"`
}

// Chunk is one unit of retrieval-ready output text.
type Chunk struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata"`
}
