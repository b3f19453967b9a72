package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardrailNotFound(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	// 最大相似度低于阈值 → 超出文档范围
	message, triggered := policy.Check([]float64{0.1, 0.2, 0.24}, 0.9)
	assert.True(t, triggered)
	assert.True(t, strings.HasPrefix(message, "NOT_FOUND:"))

	// 无检索结果同样触发
	message, triggered = policy.Check(nil, 0.9)
	assert.True(t, triggered)
	assert.True(t, strings.HasPrefix(message, "NOT_FOUND:"))
}

func TestGuardrailThresholdBoundary(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	// 恰好等于阈值不触发规则1
	_, triggered := policy.Check([]float64{0.25}, 0.5)
	assert.False(t, triggered)

	// 恰好等于置信度阈值不触发规则2
	_, triggered = policy.Check([]float64{0.9}, 0.4)
	assert.False(t, triggered)
}

func TestGuardrailLowConfidence(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	message, triggered := policy.Check([]float64{0.8}, 0.39)
	assert.True(t, triggered)
	assert.Equal(t, "LOW_CONFIDENCE: The answer has low confidence (0.39). The information may not be reliable.", message)
}

func TestGuardrailRuleOrder(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	// 两条规则同时满足时规则1优先
	message, triggered := policy.Check([]float64{0.05}, 0.1)
	assert.True(t, triggered)
	assert.True(t, strings.HasPrefix(message, "NOT_FOUND:"))
}

func TestGuardrailPass(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	message, triggered := policy.Check([]float64{0.1, 0.6}, 0.75)
	assert.False(t, triggered)
	assert.Empty(t, message)
}

func TestGuardrailNegativeSimilarities(t *testing.T) {
	policy := NewGuardrailPolicy(0.25, 0.4)

	// 全负相似度必须触发，最大值初始化不能吞掉负数
	message, triggered := policy.Check([]float64{-0.3, -0.8}, 0.9)
	assert.True(t, triggered)
	assert.True(t, strings.HasPrefix(message, "NOT_FOUND:"))
}
