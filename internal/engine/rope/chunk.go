package rope

import "unicode/utf8"

// Chunk size constants control the granularity of leaves built from large text.
const (
	// DefaultChunkSize is the preferred number of characters per leaf.
	DefaultChunkSize = 256

	// MinChunkSize is the smallest chunk size accepted by Build.
	MinChunkSize = 8
)

// splitIntoChunks splits s into fragments of at most size characters.
// It prefers cutting just after a newline near the end of a fragment.
func splitIntoChunks(s string, size int) []string {
	if len(s) == 0 {
		return nil
	}
	size = max(size, MinChunkSize)

	var chunks []string
	for len(s) > 0 {
		cut, count := 0, 0
		newlineCut, newlineCount := -1, 0
		for cut < len(s) && count < size {
			_, w := utf8.DecodeRuneInString(s[cut:])
			cut += w
			count++
			if s[cut-w] == '\n' {
				newlineCut, newlineCount = cut, count
			}
		}

		// Only prefer the newline if it falls in the last quarter of the chunk
		if cut < len(s) && newlineCut > 0 && newlineCount >= size-size/4 {
			cut = newlineCut
		}

		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return chunks
}

// Build creates a height-balanced rope from s with leaves of at most chunkSize
// characters. A chunkSize below MinChunkSize is raised to it.
func Build(s string, chunkSize int) Rope {
	chunks := splitIntoChunks(s, chunkSize)
	if len(chunks) == 0 {
		return FromString("")
	}

	leaves := make([]Node, len(chunks))
	for i, c := range chunks {
		leaves[i] = NewLeaf(c)
	}
	return Rope{root: buildBalanced(leaves)}
}
