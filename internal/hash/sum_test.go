package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		sum  uint64
	}{
		{"nil slice", nil, 0xef46db3751d8e999},
		{"short bytes", []byte("test"), 0x4fdcca5ddb678139},
		{"long bytes", []byte("this is a longer test string to hash"), 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sum, Sum(tt.data))
		})
	}
}

func TestSum_ContentSensitive(t *testing.T) {
	record := make([]byte, 40)
	copy(record, ".text")

	base := Sum(record)
	assert.Equal(t, base, Sum(record), "same bytes must produce the same fingerprint")

	record[36] ^= 0x20
	assert.NotEqual(t, base, Sum(record), "a single flipped bit must change the fingerprint")
}

func BenchmarkSum(b *testing.B) {
	data := make([]byte, 40*16)
	for i := range data {
		data[i] = byte(i)
	}
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		Sum(data)
	}
}
