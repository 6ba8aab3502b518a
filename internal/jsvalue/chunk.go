package jsvalue

// DefaultChunkSize is the window size used when paging large arrays into
// the tree view.
const DefaultChunkSize = 100

// Chunk is one contiguous window over an array's elements. Start and End
// are inclusive element indices.
type Chunk struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Elements []*Value `json:"elements"`
}

// ChunkElements partitions elements into ordered windows of size elements
// each, with the remainder in the final window. An array that fits in a
// single window comes back as one chunk spanning the whole array, which
// callers treat as "no chunking". Windows are exhaustive, contiguous and
// non-overlapping.
func ChunkElements(elements []*Value, size int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if len(elements) == 0 {
		return []Chunk{{Start: 0, End: -1, Elements: nil}}
	}
	chunks := make([]Chunk, 0, (len(elements)+size-1)/size)
	for start := 0; start < len(elements); start += size {
		end := start + size
		if end > len(elements) {
			end = len(elements)
		}
		chunks = append(chunks, Chunk{
			Start:    start,
			End:      end - 1,
			Elements: elements[start:end],
		})
	}
	return chunks
}
