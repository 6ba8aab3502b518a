package jsvalue

import "testing"

func numbered(n int) []*Value {
	out := make([]*Value, n)
	for i := range out {
		out[i] = &Value{Kind: KindNumber, Number: float64(i)}
	}
	return out
}

func TestChunkElements_SmallArraySingleChunk(t *testing.T) {
	chunks := ChunkElements(numbered(42), 100)
	if len(chunks) != 1 {
		t.Fatalf("chunks=%d want 1", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != 41 || len(chunks[0].Elements) != 42 {
		t.Fatalf("chunk=%+v", chunks[0])
	}
}

func TestChunkElements_SplitsAtBoundary(t *testing.T) {
	chunks := ChunkElements(numbered(101), 100)
	if len(chunks) != 2 {
		t.Fatalf("chunks=%d want 2", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != 99 {
		t.Fatalf("first chunk=%+v want 0-99", chunks[0])
	}
	if chunks[1].Start != 100 || chunks[1].End != 100 || len(chunks[1].Elements) != 1 {
		t.Fatalf("second chunk=%+v want 100-100", chunks[1])
	}
}

func TestChunkElements_ExhaustiveAndContiguous(t *testing.T) {
	sizes := []struct{ n, c int }{
		{n: 0, c: 100}, {n: 1, c: 1}, {n: 99, c: 100}, {n: 100, c: 100},
		{n: 250, c: 100}, {n: 300, c: 100}, {n: 7, c: 3},
	}
	for _, tt := range sizes {
		chunks := ChunkElements(numbered(tt.n), tt.c)
		wantChunks := (tt.n + tt.c - 1) / tt.c
		if wantChunks == 0 {
			wantChunks = 1
		}
		if len(chunks) != wantChunks {
			t.Fatalf("n=%d c=%d chunks=%d want %d", tt.n, tt.c, len(chunks), wantChunks)
		}
		total := 0
		next := 0
		for _, ch := range chunks {
			if ch.Start != next {
				t.Fatalf("n=%d c=%d chunk starts at %d want %d", tt.n, tt.c, ch.Start, next)
			}
			total += len(ch.Elements)
			next = ch.End + 1
		}
		if total != tt.n {
			t.Fatalf("n=%d c=%d slice lengths sum to %d", tt.n, tt.c, total)
		}
	}
}

func TestChunkElements_DecodedArrayScenario(t *testing.T) {
	items := make([]any, 101)
	for i := range items {
		items[i] = map[string]any{"type": "string", "value": "item"}
	}
	v := Decode(map[string]any{
		"type":      "array",
		"items":     items,
		"length":    float64(101),
		"truncated": false,
	})
	if v == nil || v.Kind != KindArray {
		t.Fatalf("decode failed: %+v", v)
	}
	chunks := ChunkElements(v.Array.Elements, 100)
	if len(chunks) != 2 {
		t.Fatalf("chunks=%d want 2", len(chunks))
	}
}
