package knowledge

import (
	"math"
	"strings"
)

// 置信度四因子权重
const (
	similarityWeight   = 0.4
	completenessWeight = 0.2
	overlapWeight      = 0.2
	certaintyWeight    = 0.2

	// 答案达到该词数视为完整
	completenessTargetWords = 20
)

// 答案中出现这些短语时判定为不确定表述
var uncertaintyPhrases = []string{
	"not sure",
	"unclear",
	"cannot determine",
	"not found",
	"unknown",
}

// ConfidenceScorer 多因子置信度打分器
// 综合检索相似度、答案完整度、上下文词汇重叠和不确定性表述
type ConfidenceScorer struct {
	lowThreshold  float64
	highThreshold float64
}

// NewConfidenceScorer 创建置信度打分器
func NewConfidenceScorer(lowThreshold, highThreshold float64) *ConfidenceScorer {
	if lowThreshold <= 0 {
		lowThreshold = 0.4
	}
	if highThreshold <= 0 {
		highThreshold = 0.7
	}
	return &ConfidenceScorer{
		lowThreshold:  lowThreshold,
		highThreshold: highThreshold,
	}
}

// Score 计算置信度与可读的评分理由，置信度落在[0,1]
func (s *ConfidenceScorer) Score(similarities []float64, answer, context string) (float64, string) {
	// 因子1：平均检索相似度
	var avgSimilarity float64
	if len(similarities) > 0 {
		for _, sim := range similarities {
			avgSimilarity += sim
		}
		avgSimilarity /= float64(len(similarities))
	}
	similarityScore := avgSimilarity * similarityWeight

	// 因子2：答案完整度，过短的答案降权
	answerWords := strings.Fields(answer)
	completenessScore := math.Min(float64(len(answerWords))/completenessTargetWords, 1.0) * completenessWeight

	// 因子3：答案与上下文的词汇重叠
	answerSet := wordSet(answer)
	contextSet := wordSet(context)
	var overlapCount int
	for word := range answerSet {
		if _, ok := contextSet[word]; ok {
			overlapCount++
		}
	}
	denominator := len(answerSet)
	if denominator < 1 {
		denominator = 1
	}
	overlapScore := float64(overlapCount) / float64(denominator) * overlapWeight

	// 因子4：不确定性表述检测
	certaintyScore := certaintyWeight
	lowerAnswer := strings.ToLower(answer)
	for _, phrase := range uncertaintyPhrases {
		if strings.Contains(lowerAnswer, phrase) {
			certaintyScore = 0
			break
		}
	}

	total := similarityScore + completenessScore + overlapScore + certaintyScore

	// 负相似度可能把总分拉到0以下，对外保证[0,1]
	total = math.Max(0, math.Min(1, total))

	var reasoning string
	switch {
	case total >= s.highThreshold:
		reasoning = "High confidence: Strong retrieval match with complete answer"
	case total >= s.lowThreshold:
		reasoning = "Medium confidence: Partial match found in document"
	default:
		reasoning = "Low confidence: Weak or no relevant information found"
	}

	return total, reasoning
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		set[word] = struct{}{}
	}
	return set
}

// Round3 保留3位小数，用于对外报告置信度
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
