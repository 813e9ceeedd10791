package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/priyasingh1501/untangle-backend/utils"
	"go.uber.org/zap"
)

// AIAugmentService overlays language-model refinements onto the rule-based
// effect scores. The service is strictly best-effort: on any failure, timeout,
// malformed response, missing credential, or caller opt-out it returns the
// rule-based baseline untouched. The output shape never changes, so
// downstream consumers never branch on AI availability.
type AIAugmentService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	timeout time.Duration
	log     *zap.SugaredLogger
}

func NewAIAugmentService(log *zap.SugaredLogger) *AIAugmentService {
	return &AIAugmentService{
		baseURL: utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		client:  &http.Client{Timeout: 15 * time.Second},
		timeout: 12 * time.Second,
		log:     log,
	}
}

// MealItemSummary is the per-item slice of the prompt payload.
type MealItemSummary struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

const augmentSystemPrompt = `You are a nutrition analyst. You receive a meal (items, nutrient totals, situational context) and a rule-based baseline of eight health-effect scores. Refine any effect you can improve on. Respond with a single JSON object whose keys are a subset of: fatForming, strength, immunity, inflammation, antiInflammatory, energizing, gutFriendly, moodLifting, aiInsights. Each effect value may contain: score (number 0-10), label (string), why (array of strings), aiInsights (string). Omit effects you would not change. aiInsights at the top level is a short overall note.`

// effectOverride carries only the fields the model chose to send; nil fields
// keep their rule-based values (spread-merge).
type effectOverride struct {
	Score      *float64  `json:"score"`
	Label      *string   `json:"label"`
	Why        *[]string `json:"why"`
	AIInsights *string   `json:"aiInsights"`
}

type augmentResponse struct {
	FatForming       *effectOverride `json:"fatForming"`
	Strength         *effectOverride `json:"strength"`
	Immunity         *effectOverride `json:"immunity"`
	Inflammation     *effectOverride `json:"inflammation"`
	AntiInflammatory *effectOverride `json:"antiInflammatory"`
	Energizing       *effectOverride `json:"energizing"`
	GutFriendly      *effectOverride `json:"gutFriendly"`
	MoodLifting      *effectOverride `json:"moodLifting"`
	AIInsights       string          `json:"aiInsights"`
}

// Enhance requests AI refinements for the eight effects and merges them over
// the baseline. The second return value is the optional overall insights
// string; it is empty whenever the call did not succeed.
func (s *AIAugmentService) Enhance(
	ctx context.Context,
	items []MealItemSummary,
	totals models.NutrientTotals,
	mealCtx models.MealContext,
	userHint string,
	baseline models.EffectSet,
	skip bool,
) (models.EffectSet, string) {
	if skip {
		return baseline, ""
	}
	if s.apiKey == "" {
		s.log.Debugw("ai augmentation disabled: no API key")
		return baseline, ""
	}

	resp, err := s.call(ctx, items, totals, mealCtx, userHint, baseline)
	if err != nil {
		s.log.Warnw("ai augmentation failed, keeping rule-based effects", "error", err)
		return baseline, ""
	}

	merged := baseline
	applyOverride(&merged.FatForming, resp.FatForming)
	applyOverride(&merged.Strength, resp.Strength)
	applyOverride(&merged.Immunity, resp.Immunity)
	applyOverride(&merged.Inflammation, resp.Inflammation)
	applyOverride(&merged.AntiInflammatory, resp.AntiInflammatory)
	applyOverride(&merged.Energizing, resp.Energizing)
	applyOverride(&merged.GutFriendly, resp.GutFriendly)
	applyOverride(&merged.MoodLifting, resp.MoodLifting)
	return merged, resp.AIInsights
}

// applyOverride spread-merges one effect: AI fields win, unlisted fields keep
// their rule-based values. Scores are re-clamped because the model is
// untrusted.
func applyOverride(base *models.EffectResult, o *effectOverride) {
	if o == nil {
		return
	}
	if o.Score != nil {
		v := *o.Score
		if v < 0 {
			v = 0
		}
		if v > 10 {
			v = 10
		}
		base.Score = v
	}
	if o.Label != nil && *o.Label != "" {
		base.Label = *o.Label
	}
	if o.Why != nil && len(*o.Why) > 0 {
		base.Why = *o.Why
	}
	if o.AIInsights != nil {
		base.AIInsights = *o.AIInsights
	}
	base.AIEnhanced = true
}

type chatCompletionRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *AIAugmentService) call(
	ctx context.Context,
	items []MealItemSummary,
	totals models.NutrientTotals,
	mealCtx models.MealContext,
	userHint string,
	baseline models.EffectSet,
) (*augmentResponse, error) {
	payload := map[string]any{
		"items":    items,
		"totals":   totals,
		"context":  mealCtx,
		"baseline": baseline,
	}
	if userHint != "" {
		payload["userProfile"] = userHint
	}
	userJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal augmentation payload: %w", err)
	}

	reqBody := chatCompletionRequest{
		Model:       s.model,
		Temperature: 0.3,
		Messages: []chatMessage{
			{Role: "system", Content: augmentSystemPrompt},
			{Role: "user", Content: string(userJSON)},
		},
	}
	reqBody.ResponseFormat.Type = "json_object"
	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	// The augmentation call must never block the caller past its deadline.
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response error: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat API error %d: %s", resp.StatusCode, string(respBytes))
	}

	var cr chatCompletionResponse
	if err := json.Unmarshal(respBytes, &cr); err != nil {
		return nil, fmt.Errorf("decode chat response error: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty chat completion")
	}

	var out augmentResponse
	if err := json.Unmarshal([]byte(cr.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return &out, nil
}
