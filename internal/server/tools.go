// internal/server/tools.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/google/uuid"

	"mcp-meal-plan/internal/models"
	"mcp-meal-plan/internal/nutrition"
	"mcp-meal-plan/internal/planner"
)

var errInvalidParams = errors.New("invalid parameters")

type ProfileParams struct {
	Profile models.ClientProfile `json:"profile" description:"Client profile: age, gender, height_cm, weight_kg, activity_level, goal, dietary_restrictions"`
}

type DistributeMealsParams struct {
	TargetCalories int `json:"target_calories" description:"Daily calorie target in kcal"`
	SlotCount      int `json:"slot_count,omitempty" description:"Number of meals (defaults to 5)"`
}

type GeneratePlanParams struct {
	Profile   models.ClientProfile `json:"profile" description:"Client profile"`
	SlotCount int                  `json:"slot_count,omitempty" description:"Number of meals (defaults to 5)"`
	Save      bool                 `json:"save,omitempty" description:"Store the draft plan"`
}

type GenerateAIPlanParams struct {
	Profile models.ClientProfile `json:"profile" description:"Client profile"`
	Save    bool                 `json:"save,omitempty" description:"Store the generated plan"`
}

type ValidatePlanParams struct {
	Plan models.GeneratedMealPlan `json:"plan" description:"Plan with food items filled in"`
}

type GetPlansParams struct {
	Limit int `json:"limit,omitempty" description:"Maximum number of plans to return"`
}

type GetPlanParams struct {
	ID string `json:"id" description:"Plan id"`
}

type ListTemplatesParams struct {
	MealType string `json:"meal_type,omitempty" description:"Only templates of this meal type"`
}

// extractParams converts the request arguments into the target params struct
func extractParams(req *protocol.CallToolRequest, target interface{}) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return fmt.Errorf("%w: %v", errInvalidParams, err)
	}

	return nil
}

func (s *MealPlanServer) registerTools() {
	s.tools = map[string]tool{}
	add := func(name, description string, params interface{}, handler toolHandler) {
		s.tools[name] = tool{definition: newTool(name, description, params), handler: handler}
	}

	add("calculate_energy",
		"Compute basal and total energy expenditure, target calories and macro grams for a client profile",
		ProfileParams{}, s.handleCalculateEnergy)
	add("distribute_meals",
		"Split a daily calorie target across meal slots",
		DistributeMealsParams{}, s.handleDistributeMeals)
	add("generate_meal_plan",
		"Assemble a draft plan by matching catalog templates to each meal slot",
		GeneratePlanParams{}, s.handleGenerateMealPlan)
	add("generate_ai_plan",
		"Ask the generative plan source for a full plan and validate it against computed targets",
		GenerateAIPlanParams{}, s.handleGenerateAIPlan)
	add("validate_plan",
		"Check a filled-in plan for calorie floor, overshoot, protein and meal count warnings",
		ValidatePlanParams{}, s.handleValidatePlan)
	add("get_plans",
		"List stored plans, newest first",
		GetPlansParams{}, s.handleGetPlans)
	add("get_plan",
		"Fetch one stored plan by id",
		GetPlanParams{}, s.handleGetPlan)
	add("delete_plan",
		"Delete one stored plan with its meals and items",
		GetPlanParams{}, s.handleDeletePlan)
	add("list_templates",
		"List catalog meal templates",
		ListTemplatesParams{}, s.handleListTemplates)
}

func (s *MealPlanServer) handleCalculateEnergy(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	targets, err := nutrition.Calculate(params.Profile)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(targets)
}

func (s *MealPlanServer) handleDistributeMeals(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params DistributeMealsParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.TargetCalories <= 0 {
		return nil, fmt.Errorf("%w: target_calories must be positive", errInvalidParams)
	}
	if params.SlotCount == 0 {
		params.SlotCount = nutrition.DefaultSlotCount
	}

	slots, err := nutrition.DistributeMealCalories(params.TargetCalories, params.SlotCount)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(slots)
}

func (s *MealPlanServer) handleGenerateMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GeneratePlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}
	if params.SlotCount == 0 {
		params.SlotCount = nutrition.DefaultSlotCount
	}

	plan, err := s.matcher.GenerateMealPlanWithSlots(params.Profile, params.SlotCount)
	if err != nil {
		return nil, err
	}

	if err := s.finishPlan(plan, params.Save); err != nil {
		return nil, err
	}

	return s.createJSONResponse(plan)
}

type aiPlanResponse struct {
	Plan       *models.GeneratedMealPlan `json:"plan"`
	Validation models.ValidationResult   `json:"validation"`
}

func (s *MealPlanServer) handleGenerateAIPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GenerateAIPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if s.planSource == nil {
		return nil, fmt.Errorf("no external plan source configured")
	}

	result, err := planner.GenerateExternal(ctx, s.planSource, params.Profile)
	if err != nil {
		return nil, err
	}
	if !result.Validation.Valid {
		s.log.Info("generated plan needs review", "warnings", len(result.Validation.Warnings))
	}

	if err := s.finishPlan(result.Plan, params.Save); err != nil {
		return nil, err
	}

	return s.createJSONResponse(aiPlanResponse{
		Plan:       result.Plan,
		Validation: result.Validation,
	})
}

// finishPlan stamps a fresh plan with an id and creation time and stores it
// when asked to.
func (s *MealPlanServer) finishPlan(plan *models.GeneratedMealPlan, save bool) error {
	plan.ID = uuid.NewString()
	plan.CreatedAt = s.now().UTC()

	if !save {
		return nil
	}
	if err := s.storage.SavePlan(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	s.log.Info("saved plan", "plan_id", plan.ID, "source", plan.Source)
	return nil
}

func (s *MealPlanServer) handleValidatePlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ValidatePlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	return s.createJSONResponse(planner.ValidatePlan(&params.Plan))
}

func (s *MealPlanServer) handleGetPlans(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetPlansParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		params.Limit = 20
	}

	plans, err := s.storage.GetPlans(params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve plans: %w", err)
	}
	if plans == nil {
		plans = []*models.GeneratedMealPlan{}
	}

	return s.createJSONResponse(plans)
}

func (s *MealPlanServer) handleGetPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.ID == "" {
		return nil, fmt.Errorf("%w: plan id is required", errInvalidParams)
	}

	plan, err := s.storage.GetPlan(params.ID)
	if err != nil {
		return nil, err
	}

	return s.createJSONResponse(plan)
}

func (s *MealPlanServer) handleDeletePlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GetPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.ID == "" {
		return nil, fmt.Errorf("%w: plan id is required", errInvalidParams)
	}

	if err := s.storage.DeletePlan(params.ID); err != nil {
		return nil, err
	}
	s.log.Info("deleted plan", "plan_id", params.ID)

	return s.createJSONResponse(map[string]string{"deleted": params.ID})
}

func (s *MealPlanServer) handleListTemplates(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params ListTemplatesParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	if params.MealType == "" {
		return s.createJSONResponse(s.catalog.Templates())
	}

	mt := models.MealType(params.MealType)
	if !mt.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", errInvalidParams, params.MealType)
	}
	templates := s.catalog.ByMealType(mt)
	if templates == nil {
		templates = []models.MealTemplate{}
	}

	return s.createJSONResponse(templates)
}
