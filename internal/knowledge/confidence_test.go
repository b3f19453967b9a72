package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceScoreRange(t *testing.T) {
	scorer := NewConfidenceScorer(0.4, 0.7)

	cases := []struct {
		name         string
		similarities []float64
		answer       string
		context      string
	}{
		{"空输入", nil, "", ""},
		{"全部满分因子", []float64{1.0, 1.0, 1.0}, strings.Repeat("match ", 25), strings.Repeat("match ", 25)},
		{"负相似度", []float64{-1.0, -1.0}, "short", "unrelated context"},
		{"混合相似度", []float64{0.9, -0.5, 0.1}, "The rate is $1500 per load", "rate $1500 load"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, reasoning := scorer.Score(tc.similarities, tc.answer, tc.context)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.NotEmpty(t, reasoning)
		})
	}
}

func TestConfidenceCompletenessFactor(t *testing.T) {
	scorer := NewConfidenceScorer(0.4, 0.7)

	// 2个词的答案：完整度 = 2/20 * 0.2 = 0.02
	// 无相似度、无重叠、无不确定短语 → 总分 = 0.02 + 0.2
	score, _ := scorer.Score(nil, "25 lbs", "")
	assert.InDelta(t, 0.22, score, 1e-9)

	// 20个词及以上封顶
	long := strings.Repeat("word ", 20)
	longScore, _ := scorer.Score(nil, long, "")
	assert.InDelta(t, 0.2+0.2, longScore, 1e-9)
}

func TestConfidenceUncertaintyPhrases(t *testing.T) {
	scorer := NewConfidenceScorer(0.4, 0.7)

	certain, _ := scorer.Score(nil, "The shipment weighs 25 lbs", "")
	uncertain, _ := scorer.Score(nil, "The weight is unclear from the document", "")

	// 不确定短语把确定性因子清零
	assert.InDelta(t, 0.2, certain-uncertain, 0.05)

	for _, phrase := range []string{"I am Not Sure", "the value is UNKNOWN", "cannot determine this"} {
		score, _ := scorer.Score(nil, phrase, "")
		base, _ := scorer.Score(nil, strings.Repeat("x ", len(strings.Fields(phrase))), "")
		assert.Less(t, score, base, "短语 %q 应降低置信度", phrase)
	}
}

func TestConfidenceLexicalOverlap(t *testing.T) {
	scorer := NewConfidenceScorer(0.4, 0.7)

	grounded, _ := scorer.Score(nil, "pickup in Chicago", "The pickup location is Chicago Illinois")
	ungrounded, _ := scorer.Score(nil, "pickup in Chicago", "completely unrelated text here")

	assert.Greater(t, grounded, ungrounded)
}

func TestConfidenceReasoningBands(t *testing.T) {
	scorer := NewConfidenceScorer(0.4, 0.7)

	_, low := scorer.Score(nil, "", "")
	assert.Equal(t, "Low confidence: Weak or no relevant information found", low)

	answer := strings.Repeat("rate ", 20)
	_, high := scorer.Score([]float64{0.95, 0.9}, answer, answer)
	assert.Equal(t, "High confidence: Strong retrieval match with complete answer", high)

	_, medium := scorer.Score([]float64{0.2}, strings.Repeat("load ", 20), "")
	assert.Equal(t, "Medium confidence: Partial match found in document", medium)
}

func TestRound3(t *testing.T) {
	assert.Equal(t, 0.273, Round3(3.0/11.0))
	assert.Equal(t, 0.0, Round3(0))
	assert.Equal(t, 1.0, Round3(0.9995))
}
