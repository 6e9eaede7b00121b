package embed

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticEmbedder_Deterministic(t *testing.T) {
	// Given: the same text embedded twice
	e := NewStaticEmbedder()
	ctx := context.Background()

	first, err := e.Embed(ctx, "Amazon S3 bucket policies")
	require.NoError(t, err)
	second, err := e.Embed(ctx, "Amazon S3 bucket policies")
	require.NoError(t, err)

	// Then: identical vectors, every time
	assert.Equal(t, first, second)
}

func TestStaticEmbedder_Dimensions(t *testing.T) {
	e := NewStaticEmbedder()
	vec, err := e.Embed(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Len(t, vec, StaticDimensions)
	assert.Equal(t, StaticDimensions, e.Dimensions())
	assert.Equal(t, "static-256", e.ModelName())
}

func TestStaticEmbedder_UnitNorm(t *testing.T) {
	e := NewStaticEmbedder()
	vec, err := e.Embed(context.Background(), "vectors are normalized to unit length")
	require.NoError(t, err)

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-5)
}

func TestStaticEmbedder_EmptyText(t *testing.T) {
	e := NewStaticEmbedder()

	for _, text := range []string{"", "   ", "\n\t"} {
		vec, err := e.Embed(context.Background(), text)
		require.NoError(t, err)
		require.Len(t, vec, StaticDimensions)
		for _, v := range vec {
			assert.Zero(t, v)
		}
	}
}

func TestStaticEmbedder_DifferentTextsDiffer(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	a, err := e.Embed(ctx, "vacation policy for employees")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "kubernetes cluster networking")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestStaticEmbedder_SimilarTextsCloser(t *testing.T) {
	e := NewStaticEmbedder()
	ctx := context.Background()

	query, err := e.Embed(ctx, "S3 bucket storage")
	require.NoError(t, err)
	related, err := e.Embed(ctx, "storage buckets in S3 hold objects")
	require.NoError(t, err)
	unrelated, err := e.Embed(ctx, "quarterly vacation accrual schedule")
	require.NoError(t, err)

	assert.Greater(t, dot(query, related), dot(query, unrelated))
}

func TestStaticEmbedder_EmbedBatch(t *testing.T) {
	e := NewStaticEmbedder()
	texts := []string{"first", "second", "third"}

	vectors, err := e.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, vectors, 3)

	// Batch output matches individual embedding.
	single, err := e.Embed(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, single, vectors[1])
}

func TestStaticEmbedder_ClosedReturnsError(t *testing.T) {
	e := NewStaticEmbedder()
	require.NoError(t, e.Close())

	_, err := e.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
