package knowledge

import "fmt"

// GuardrailPolicy 回答护栏策略
// 规则1：检索相似度不足，问题超出文档范围
// 规则2：置信度低于阈值，答案不可信
// 规则按顺序评估，规则1优先
type GuardrailPolicy struct {
	minSimilarityThreshold float64
	lowConfidenceThreshold float64
}

// NewGuardrailPolicy 创建护栏策略
func NewGuardrailPolicy(minSimilarity, lowConfidence float64) *GuardrailPolicy {
	if minSimilarity <= 0 {
		minSimilarity = 0.25
	}
	if lowConfidence <= 0 {
		lowConfidence = 0.4
	}
	return &GuardrailPolicy{
		minSimilarityThreshold: minSimilarity,
		lowConfidenceThreshold: lowConfidence,
	}
}

// Check 检查是否需要用护栏消息覆盖答案
// 返回覆盖消息和是否触发。触发时调用方应把置信度归零
func (g *GuardrailPolicy) Check(similarities []float64, confidence float64) (string, bool) {
	// 规则1：最大相似度低于下限，判定超出文档范围
	var maxSimilarity float64
	triggered := len(similarities) == 0
	for i, sim := range similarities {
		if i == 0 || sim > maxSimilarity {
			maxSimilarity = sim
		}
	}
	if triggered || maxSimilarity < g.minSimilarityThreshold {
		return "NOT_FOUND: No relevant information found in the document. The question may be outside the document's scope.", true
	}

	// 规则2：置信度过低
	if confidence < g.lowConfidenceThreshold {
		return fmt.Sprintf("LOW_CONFIDENCE: The answer has low confidence (%.2f). The information may not be reliable.", confidence), true
	}

	return "", false
}
