package knowledge

import (
	"context"
	"errors"
	"math"
	"sort"
)

// RetrievedChunk 检索结果：块及其与查询的余弦相似度
type RetrievedChunk struct {
	Chunk Chunk
	Score float64
}

// Retriever 基于余弦相似度的内存向量检索器
type Retriever struct {
	embedder Embedder
	topK     int
}

// NewRetriever 创建检索器
func NewRetriever(embedder Embedder, topK int) *Retriever {
	if topK <= 0 {
		topK = 3
	}
	return &Retriever{
		embedder: embedder,
		topK:     topK,
	}
}

// Retrieve 返回与查询最相似的topK个块，按相似度降序
// 相似度相同时保持块的原始顺序。chunks为空时返回空结果
func (r *Retriever) Retrieve(ctx context.Context, query string, chunks []Chunk, embeddings [][]float32) ([]RetrievedChunk, error) {
	if len(chunks) == 0 {
		return nil, nil
	}
	if len(chunks) != len(embeddings) {
		return nil, errors.New("chunks and embeddings are not aligned")
	}

	queryEmbedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	queryNorm := vectorNorm(queryEmbedding)

	results := make([]RetrievedChunk, 0, len(chunks))
	for i, chunk := range chunks {
		results = append(results, RetrievedChunk{
			Chunk: chunk,
			Score: cosineSimilarity(queryEmbedding, embeddings[i], queryNorm),
		})
	}

	// 稳定排序，同分时保留原始块顺序
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > r.topK {
		results = results[:r.topK]
	}
	return results, nil
}

func vectorNorm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v * v)
	}
	return math.Sqrt(sum)
}

func cosineSimilarity(a, b []float32, normA float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) != len(b) {
		// 尝试对齐长度
		minLen := len(a)
		if len(b) < minLen {
			minLen = len(b)
		}
		a = a[:minLen]
		b = b[:minLen]
	}

	var dot float64
	var normB float64
	for i := range a {
		dot += float64(a[i] * b[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (normA * math.Sqrt(normB))
}
