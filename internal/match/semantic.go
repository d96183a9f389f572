package match

import (
	"context"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"careerpilot-backend/internal/llm"
)

const (
	semanticTopK = 5
	// Reference text is capped before embedding; one oversized call would
	// dominate cost and the head of a job description carries its signal.
	referenceEmbedCap = 3000
	// Embedding calls per pipeline are independent network requests; the
	// limit keeps a single request from flooding the provider.
	embedParallelism = 4
)

// SemanticScorer computes the embedding-based similarity between a resume
// and a reference text on a 0-100 scale.
type SemanticScorer struct {
	Embedder    llm.Embedder
	CallTimeout time.Duration
}

// Score chunks the resume, embeds each chunk plus the capped reference text,
// and averages the top-K cosine similarities. Ranking by best-matching
// sections rewards a long resume with one highly relevant section instead of
// penalizing it for unrelated material.
func (s *SemanticScorer) Score(ctx context.Context, resumeText, referenceText string) (float64, error) {
	chunks := Chunks(resumeText, chunkSize, chunkOverlap)
	if len(chunks) == 0 {
		return 0.0, nil
	}
	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}

	var refVec []float32
	chunkVecs := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedParallelism)
	g.Go(func() error {
		vec, err := s.embed(gctx, Truncate(referenceText, referenceEmbedCap))
		if err != nil {
			return err
		}
		refVec = vec
		return nil
	})
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			vec, err := s.embed(gctx, chunk)
			if err != nil {
				return err
			}
			chunkVecs[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0.0, err
	}

	sims := make([]float64, 0, len(chunkVecs))
	for _, vec := range chunkVecs {
		sims = append(sims, Cosine(vec, refVec))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(sims)))

	k := semanticTopK
	if len(sims) < k {
		k = len(sims)
	}
	var sum float64
	for _, sim := range sims[:k] {
		sum += sim
	}
	return round2(sum / float64(k) * 100), nil
}

func (s *SemanticScorer) embed(ctx context.Context, text string) ([]float32, error) {
	if s.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CallTimeout)
		defer cancel()
	}
	return s.Embedder.Embed(ctx, text)
}

// Cosine returns the cosine similarity between two vectors, or 0.0 when
// either magnitude is zero. Mismatched lengths compare over the shorter
// prefix.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, x := range a {
		magA += float64(x) * float64(x)
	}
	for _, y := range b {
		magB += float64(y) * float64(y)
	}
	if magA == 0 || magB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
