package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// generateText creates a string of the given size with realistic content.
func generateText(size int) string {
	var sb strings.Builder
	sb.Grow(size)

	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog", "hello", "world"}
	lineLen := 0

	for sb.Len() < size {
		word := words[rand.Intn(len(words))]
		if sb.Len()+len(word)+1 > size {
			break
		}

		if sb.Len() > 0 {
			if lineLen > 60 {
				sb.WriteByte('\n')
				lineLen = 0
			} else {
				sb.WriteByte(' ')
				lineLen++
			}
		}

		sb.WriteString(word)
		lineLen += len(word)
	}

	return sb.String()
}

var benchSizes = []int{1 << 10, 64 << 10, 1 << 20}

func BenchmarkBuild(b *testing.B) {
	for _, size := range benchSizes {
		text := generateText(size)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = Build(text, DefaultChunkSize)
			}
		})
	}
}

func BenchmarkInsert(b *testing.B) {
	for _, size := range benchSizes {
		r := Build(generateText(size), DefaultChunkSize)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = r.Insert(rand.Intn(r.Len()+1), "inserted")
			}
		})
	}
}

func BenchmarkDelete(b *testing.B) {
	for _, size := range benchSizes {
		r := Build(generateText(size), DefaultChunkSize)
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				start := rand.Intn(r.Len() - 10)
				_, _ = r.Delete(start, start+10)
			}
		})
	}
}

func BenchmarkEditThenRebalance(b *testing.B) {
	base := Build(generateText(64<<10), DefaultChunkSize)
	for i := 0; i < b.N; i++ {
		r := base
		for j := 0; j < 100; j++ {
			r, _ = r.Insert(rand.Intn(r.Len()+1), "x")
		}
		_ = r.Rebalance()
	}
}

func BenchmarkBalance(b *testing.B) {
	r := Build(generateText(1<<20), DefaultChunkSize)
	for j := 0; j < 1000; j++ {
		r, _ = r.Insert(rand.Intn(r.Len()+1), "x")
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.Balance()
	}
}

func BenchmarkString(b *testing.B) {
	r := Build(generateText(1<<20), DefaultChunkSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.String()
	}
}
