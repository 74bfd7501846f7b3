package advice

import (
	"context"
	"strings"

	"fingerpay.backend/internal/config"
	"fingerpay.backend/internal/usecases"
)

// MockAdvisor returns canned responses keyed off the persona named in the
// prompt. Used whenever no API key is configured.
type MockAdvisor struct{}

// NewMockAdvisor creates the fallback advisor
func NewMockAdvisor() *MockAdvisor {
	return &MockAdvisor{}
}

// GenerateAdvice returns deterministic advisory text
func (m *MockAdvisor) GenerateAdvice(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "Credit AI"):
		return "Your credit profile is developing well. Keep completing transactions consistently and your score will rise; avoid refunds where possible since they weigh against eligibility.", nil
	case strings.Contains(prompt, "FinAgent"):
		return "Based on your recent registrations, expect steady float demand this week. Keep at least twice your daily average cash on hand and restock mid-week.", nil
	case strings.Contains(prompt, "budget"):
		return "Track every purchase for a week, set a hard ceiling for discretionary spending, and move what is left into your vault before the month starts.", nil
	case strings.Contains(prompt, "vault"):
		return "Consider moving 20% of your spendable balance into your vault. Ring-fenced savings grow fastest when the transfer is automatic and modest.", nil
	default:
		return "Spend less than you earn, save the difference into your vault, and review your transactions weekly.", nil
	}
}

// NewProvider picks the live client when an API key is configured, the mock
// otherwise.
func NewProvider(cfg config.AdviceConfig) usecases.AdviceProvider {
	if cfg.APIKey == "" {
		return NewMockAdvisor()
	}
	return NewGeminiClient(cfg)
}
