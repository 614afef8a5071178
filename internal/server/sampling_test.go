package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/planner"
)

const modelPlanJSON = `{"meals":[{"name":"Café da manhã","time":"07:00","targetCalories":400,"items":[{"food_name":"Tapioca","quantity":60,"measure":"g","estimated_kcal":220,"estimated_protein":1,"estimated_carb":54,"estimated_fat":0}]}],"reasoning":"ok","educationalNotes":"hydrate"}`

// gatewayStub answers like the OpenRouter gateway: a JSON-RPC result whose
// first text content is a completion envelope around the model output.
func gatewayStub(t *testing.T, modelText string, gotAuth *string, gotBody *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openrouter-gateway" {
			http.NotFound(w, r)
			return
		}
		if gotAuth != nil {
			*gotAuth = r.Header.Get("Authorization")
		}
		if gotBody != nil {
			json.NewDecoder(r.Body).Decode(gotBody)
		}
		envelope, _ := json.Marshal(map[string]string{"content": modelText})
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result": map[string]interface{}{
				"content": []map[string]string{{"type": "text", "text": string(envelope)}},
			},
		})
	}))
}

func TestSamplingClient_Generate(t *testing.T) {
	var auth string
	var body map[string]interface{}
	gw := gatewayStub(t, "Here is the plan:\n"+modelPlanJSON+"\nEnjoy!", &auth, &body)
	defer gw.Close()

	client := NewSamplingClient(gw.URL+"/", "secret", "test-model", 5*time.Second)
	plan, err := client.Generate(context.Background(), models.ExternalPlanRequest{
		CalculatedData: models.CalculatedData{TargetCalories: 1903},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if auth != "Bearer secret" {
		t.Errorf("expected bearer token, got %q", auth)
	}
	params, _ := body["params"].(map[string]interface{})
	if params["name"] != "create_completion" {
		t.Errorf("expected create_completion call, got %v", params["name"])
	}
	args, _ := params["arguments"].(map[string]interface{})
	if args["model"] != "test-model" {
		t.Errorf("expected configured model, got %v", args["model"])
	}
	messages, _ := args["messages"].([]interface{})
	if len(messages) != 1 || !strings.Contains(messages[0].(map[string]interface{})["content"].(string), `"targetCalories": 1903`) {
		t.Errorf("expected calculated data in the prompt, got %v", messages)
	}

	if len(plan.Meals) != 1 || plan.Meals[0].Items[0].EstimatedKcal != 220 || plan.EducationalNotes != "hydrate" {
		t.Errorf("unexpected plan %+v", plan)
	}
}

func TestSamplingClient_MalformedOutput(t *testing.T) {
	gw := gatewayStub(t, "I cannot help with that.", nil, nil)
	defer gw.Close()

	client := NewSamplingClient(gw.URL, "", "m", 5*time.Second)
	_, err := client.Generate(context.Background(), models.ExternalPlanRequest{})
	if !errors.Is(err, planner.ErrMalformedPlan) {
		t.Errorf("expected ErrMalformedPlan, got %v", err)
	}
}

func TestSamplingClient_GatewayFailure(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer gw.Close()

	client := NewSamplingClient(gw.URL, "", "m", 5*time.Second)
	_, err := client.Generate(context.Background(), models.ExternalPlanRequest{})
	if err == nil || !strings.Contains(err.Error(), "status 502") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestSamplingClient_ContextCancelled(t *testing.T) {
	gw := gatewayStub(t, modelPlanJSON, nil, nil)
	defer gw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewSamplingClient(gw.URL, "", "m", 5*time.Second)
	if _, err := client.Generate(ctx, models.ExternalPlanRequest{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestParsePlanResponse_BareJSON(t *testing.T) {
	plan, err := parsePlanResponse(modelPlanJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Meals[0].Name != "Café da manhã" {
		t.Errorf("unexpected plan %+v", plan)
	}
}
