// internal/server/sampling.go
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/planner"
)

// SamplingClient asks a model behind the OpenRouter gateway for a complete
// plan. It implements planner.ExternalPlanSource.
type SamplingClient struct {
	httpClient *http.Client
	proxyURL   string
	apiKey     string
	model      string
}

var _ planner.ExternalPlanSource = (*SamplingClient)(nil)

func NewSamplingClient(proxyURL, apiKey, model string, timeout time.Duration) *SamplingClient {
	return &SamplingClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		proxyURL: strings.TrimRight(proxyURL, "/"),
		apiKey:   apiKey,
		model:    model,
	}
}

const planSystemPrompt = `You are a clinical nutritionist assistant drafting daily meal plans for review by a registered professional.

Plan against the targets you are given; do not recompute them.

IMPORTANT: Always respond with valid JSON in this exact format:
{
  "meals": [
    {
      "name": "meal name",
      "time": "HH:MM",
      "targetCalories": [integer],
      "items": [
        {
          "food_name": "specific food",
          "quantity": [number],
          "measure": "g|ml|unidade|fatia|colher",
          "estimated_kcal": [number],
          "estimated_protein": [number],
          "estimated_carb": [number],
          "estimated_fat": [number]
        }
      ]
    }
  ],
  "reasoning": "short explanation of the distribution",
  "educationalNotes": "short notes for the client"
}

Respect every dietary restriction in the profile.`

func (s *SamplingClient) Generate(ctx context.Context, req models.ExternalPlanRequest) (*models.ExternalPlan, error) {
	payload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan request: %w", err)
	}

	userPrompt := fmt.Sprintf(`Draft a one-day meal plan for this client.

%s

Total daily calories should land close to calculatedData.targetCalories and protein should reach calculatedData.macros.protein_g.`, payload)

	completionRequest := map[string]interface{}{
		"model":         s.model,
		"system_prompt": planSystemPrompt,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": userPrompt,
			},
		},
		"max_tokens":  4000,
		"temperature": 0.3,
	}

	gatewayResponse, err := s.callGateway(ctx, "create_completion", completionRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get AI completion: %w", err)
	}

	return parsePlanResponse(gatewayResponse)
}

func (s *SamplingClient) callGateway(ctx context.Context, toolName string, args interface{}) (string, error) {
	url := fmt.Sprintf("%s/openrouter-gateway", s.proxyURL)

	requestData := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name":      toolName,
			"arguments": args,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("request failed with status %d and couldn't read body: %v", resp.StatusCode, err)
		}
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var mcpResponse struct {
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&mcpResponse); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if mcpResponse.Error != nil {
		return "", fmt.Errorf("gateway error: %s", mcpResponse.Error.Message)
	}
	if len(mcpResponse.Result.Content) == 0 || mcpResponse.Result.Content[0].Text == "" {
		return "", fmt.Errorf("unexpected response format")
	}

	return mcpResponse.Result.Content[0].Text, nil
}

// parsePlanResponse unwraps the completion envelope and decodes the first
// JSON object found in the model's text.
func parsePlanResponse(aiOutput string) (*models.ExternalPlan, error) {
	content := aiOutput

	var completionResp struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(aiOutput), &completionResp); err == nil && completionResp.Content != "" {
		content = completionResp.Content
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object in model output", planner.ErrMalformedPlan)
	}

	var plan models.ExternalPlan
	if err := json.Unmarshal([]byte(content[start:end+1]), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", planner.ErrMalformedPlan, err)
	}

	return &plan, nil
}
