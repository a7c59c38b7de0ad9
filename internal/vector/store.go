package vector

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ObiAU/contentagents/internal/models"
)

type Kind string

const (
	KindPosts   Kind = "posts"
	KindSources Kind = "sources"
)

var Kinds = []Kind{KindPosts, KindSources}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPosts, KindSources:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown record type %q (want posts or sources)", s)
	}
}

// Store persists records with their embeddings and answers nearest-neighbour
// queries over them.
type Store interface {
	Insert(ctx context.Context, kind Kind, rec models.VectorRecord, embedding []float32) error
	Search(ctx context.Context, kind Kind, embedding []float32, limit int) ([]models.VectorHit, error)
	Count(ctx context.Context, kind Kind) (int, error)
	Close() error
}

// SerializeEmbedding converts a float32 vector to little-endian bytes.
func SerializeEmbedding(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func DeserializeEmbedding(data []byte) []float32 {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil
	}

	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec
}

// SquaredL2 is the distance reported as a hit's score; lower is closer.
func SquaredL2(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
