package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"career-roi/domain"
	"career-roi/logger"
)

const (
	defaultExplanationURL   = "https://api.openai.com/v1/chat/completions"
	defaultExplanationModel = "gpt-4o-mini"
	maxAlternatives         = 3
)

type ExplanationConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// ExplanationService writes a short narrative for a recommended education path. It asks
// an OpenAI-compatible chat endpoint when an API key is set and otherwise, or on any
// failure, falls back to a deterministic summary.
type ExplanationService struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewExplanationService(cfg ExplanationConfig) *ExplanationService {
	if cfg.APIURL == "" {
		cfg.APIURL = defaultExplanationURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultExplanationModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ExplanationService{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (s *ExplanationService) Enabled() bool {
	return s.apiKey != ""
}

func (s *ExplanationService) Explain(
	ctx context.Context,
	career domain.CareerProfile,
	top domain.PathOption,
	alternatives []domain.PathOption,
) string {
	if !s.Enabled() {
		return FallbackExplanation(career, top)
	}

	explanation, err := s.complete(ctx, explanationPrompt(career, top, alternatives))
	if err != nil {
		logger.Warnf(ctx, "explanation request failed, using fallback: %v", err)
		return FallbackExplanation(career, top)
	}
	return explanation
}

func explanationPrompt(career domain.CareerProfile, top domain.PathOption, alternatives []domain.PathOption) string {
	f := top.Report.Formatted

	var alt strings.Builder
	for i, option := range alternatives {
		if i == maxAlternatives {
			break
		}
		fmt.Fprintf(&alt, "- %s: cost %s, breakeven %s, NPV %s, annualized return %s\n",
			option.Education.Type, option.Report.Formatted.TotalEducationCost, option.Report.Formatted.TimeToBreakeven,
			option.Report.Formatted.NetPresentValue, option.Report.Formatted.AnnualizedReturn)
	}
	if alt.Len() == 0 {
		alt.WriteString("- none\n")
	}

	return fmt.Sprintf(`Explain why this education path is the best route into a new career.

CAREER: %s
RECOMMENDED PATH: %s (%d months)
- Total education cost: %s
- Breakeven: %s
- Net present value: %s
- Lifetime ROI: %s
- Annualized return: %s (vs stock market: %s)
- Risk-adjusted return: %s
- Verdict: %s

ALTERNATIVES:
%s
Write 3-4 plain sentences. Mention the cost, the breakeven and one trade-off against the alternatives.`,
		career.Title, top.Education.Type, top.Education.DurationMonths,
		f.TotalEducationCost, f.TimeToBreakeven, f.NetPresentValue, f.LifetimeROI,
		f.AnnualizedReturn, f.VsStockMarket, f.RiskAdjustedReturn, f.Recommendation,
		alt.String())
}

func (s *ExplanationService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a career finance advisor. You explain education investments clearly and realistically, using the numbers you are given and nothing else.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, body)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat completion: %w", err)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("chat completion returned no content")
	}

	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// FallbackExplanation summarizes a path without calling a model.
func FallbackExplanation(career domain.CareerProfile, top domain.PathOption) string {
	f := top.Report.Formatted
	if !top.Report.Result.TimeToBreakeven.Reached() {
		return fmt.Sprintf("The %s path into %s costs %s and does not pay for itself within a 40-year career. Its net present value is %s, so treat it as a lifestyle choice rather than a financial investment.",
			top.Education.Type, career.Title, f.TotalEducationCost, f.NetPresentValue)
	}
	return fmt.Sprintf("The %s path into %s costs %s and breaks even after %s. It has a net present value of %s and an annualized return of %s (%s after job security and AI resistance), rated %s.",
		top.Education.Type, career.Title, f.TotalEducationCost, f.TimeToBreakeven,
		f.NetPresentValue, f.AnnualizedReturn, f.RiskAdjustedReturn, strings.ToLower(string(f.Recommendation)))
}
