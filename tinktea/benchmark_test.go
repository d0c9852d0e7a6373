package tinktea

import (
	"strings"
	"testing"
)

// BenchmarkEncode benchmarks the Encode operation for various input sizes
func BenchmarkEncode(b *testing.B) {
	handle, err := NewKeysetHandleFromBaseKey("abcdefghijklmnopqrstuvwxyz0123456789 ", 105)
	if err != nil {
		b.Fatalf("Failed to create keyset handle: %v", err)
	}

	codec, err := New(handle)
	if err != nil {
		b.Fatalf("Failed to create codec: %v", err)
	}

	benchmarks := []struct {
		name      string
		plaintext string
	}{
		{"Short_4chars", "abcd"},
		{"Medium_18chars", "original text 1337"},
		{"Long_1000chars", strings.Repeat("lorem ipsum ", 84)[:1000]},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, err := codec.Encode(bm.plaintext)
				if err != nil {
					b.Fatalf("Encode failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkDecode benchmarks the Decode operation
func BenchmarkDecode(b *testing.B) {
	handle, err := NewKeysetHandleFromBaseKey("abcdefghijklmnopqrstuvwxyz0123456789 ", 105)
	if err != nil {
		b.Fatalf("Failed to create keyset handle: %v", err)
	}

	codec, err := New(handle)
	if err != nil {
		b.Fatalf("Failed to create codec: %v", err)
	}

	encoded, err := codec.Encode(strings.Repeat("lorem ipsum ", 84)[:1000])
	if err != nil {
		b.Fatalf("Encode failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		codec.Decode(encoded)
	}
}

// BenchmarkConcurrent benchmarks concurrent encoding on one shared codec
func BenchmarkConcurrent(b *testing.B) {
	handle, err := NewHandle(KeyTemplate())
	if err != nil {
		b.Fatalf("Failed to create keyset handle: %v", err)
	}

	codec, err := New(handle)
	if err != nil {
		b.Fatalf("Failed to create codec: %v", err)
	}

	plaintext := codec.Alphabet()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, err := codec.Encode(plaintext)
			if err != nil {
				b.Fatalf("Encode failed: %v", err)
			}
		}
	})
}
