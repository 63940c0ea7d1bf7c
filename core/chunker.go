package core

// Default chunking window, matching the analyzer's context budget.
const (
	DefaultMaxTextLength = 4096
	DefaultOverlap       = 1024
)

// Chunker splits long text into overlapping windows. Windows of width
// MaxTextLength+Overlap start at multiples of MaxTextLength, so consecutive
// chunks share an Overlap-sized region for context continuity. There is no
// sentence or word boundary awareness; splitting mid-word is tolerated.
type Chunker struct {
	MaxTextLength int
	Overlap       int
}

// NewChunker creates a chunker with the given window parameters.
// Non-positive values fall back to the defaults.
func NewChunker(maxTextLength, overlap int) *Chunker {
	if maxTextLength <= 0 {
		maxTextLength = DefaultMaxTextLength
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	return &Chunker{MaxTextLength: maxTextLength, Overlap: overlap}
}

// Chunk splits text into ordered, possibly-overlapping chunks.
//
// Text shorter than MaxTextLength is returned whole in a single-element
// slice; short inputs never pay the overlap cost. Otherwise one chunk is
// produced per stride, each at most MaxTextLength+Overlap long. The final
// chunk may be truncated at the input end, which is acceptable.
func (c *Chunker) Chunk(text string) []string {
	if len(text) < c.MaxTextLength {
		return []string{text}
	}

	var chunks []string
	width := c.MaxTextLength + c.Overlap
	for start := 0; start < len(text); start += c.MaxTextLength {
		end := start + width
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}
	return chunks
}
