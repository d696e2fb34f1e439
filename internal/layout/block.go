package layout

// BlockType tags a block in the analysis graph.
type BlockType string

const (
	BlockTable BlockType = "TABLE"
	BlockCell  BlockType = "CELL"
	BlockLine  BlockType = "LINE"
	BlockWord  BlockType = "WORD"

	BlockLayoutTitle         BlockType = "LAYOUT_TITLE"
	BlockLayoutHeader        BlockType = "LAYOUT_HEADER"
	BlockLayoutSectionHeader BlockType = "LAYOUT_SECTION_HEADER"
	BlockLayoutText          BlockType = "LAYOUT_TEXT"
	BlockLayoutList          BlockType = "LAYOUT_LIST"
)

// IsLayout reports whether the type is one of the explicit layout labels
// produced by the analysis engine's layout feature.
func (t BlockType) IsLayout() bool {
	switch t {
	case BlockLayoutTitle, BlockLayoutHeader, BlockLayoutSectionHeader, BlockLayoutText, BlockLayoutList:
		return true
	}
	return false
}

// RelationshipChild links a block to the blocks it contains.
const RelationshipChild = "CHILD"

// Relationship is a typed list of references to other blocks.
type Relationship struct {
	Type string   `json:"Type"`
	IDs  []string `json:"Ids"`
}

// BoundingBox is a normalized position on the page: all values are fractions
// of page width/height in [0,1].
type BoundingBox struct {
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
	Left   float64 `json:"Left"`
	Top    float64 `json:"Top"`
}

// Geometry carries a block's position. Only line-level blocks need it here,
// for the positional fallback segmentation.
type Geometry struct {
	BoundingBox BoundingBox `json:"BoundingBox"`
}

// Block is one node of the flat analysis graph. Field names mirror the wire
// format of the analysis service so a response decodes directly into []Block.
// Row/column fields are meaningful only for CELL blocks (1-based).
type Block struct {
	ID            string         `json:"Id"`
	BlockType     BlockType      `json:"BlockType"`
	Text          string         `json:"Text,omitempty"`
	Page          int            `json:"Page,omitempty"`
	RowIndex      int            `json:"RowIndex,omitempty"`
	ColumnIndex   int            `json:"ColumnIndex,omitempty"`
	RowSpan       int            `json:"RowSpan,omitempty"`
	ColumnSpan    int            `json:"ColumnSpan,omitempty"`
	Geometry      *Geometry      `json:"Geometry,omitempty"`
	Relationships []Relationship `json:"Relationships,omitempty"`
}

// page returns the block's page, defaulting to 1 when the engine omitted it
// (single-page documents carry no Page field).
func (b *Block) page() int {
	if b.Page <= 0 {
		return 1
	}
	return b.Page
}

// top returns the block's normalized vertical position, 0 when no geometry
// was supplied.
func (b *Block) top() float64 {
	if b.Geometry == nil {
		return 0
	}
	return b.Geometry.BoundingBox.Top
}

// childIDs collects the ids of all CHILD relationships in order.
func (b *Block) childIDs() []string {
	var ids []string
	for _, rel := range b.Relationships {
		if rel.Type == RelationshipChild {
			ids = append(ids, rel.IDs...)
		}
	}
	return ids
}
