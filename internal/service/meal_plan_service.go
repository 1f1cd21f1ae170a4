package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/repository"
	"github.com/healthsync/healthsync/pkg/pagination"
)

//go:embed food_catalog.yaml
var defaultFoodCatalog []byte

// FoodLoader returns the raw YAML food catalog.
type FoodLoader func() ([]byte, error)

func EmbeddedFoods() ([]byte, error) {
	return defaultFoodCatalog, nil
}

// FileFoods reads the catalog from path, falling back to the embedded one
// when path is empty.
func FileFoods(path string) FoodLoader {
	if path == "" {
		return EmbeddedFoods
	}
	return func() ([]byte, error) {
		return os.ReadFile(path)
	}
}

const (
	MealPlanAlgorithmVersion = "1.0"
	DefaultMealPlanHistory   = 10

	defaultPlanAge      = 30
	minPlanAge          = 18
	maxPlanAge          = 80
	defaultPlanWeightKG = 70.0
	defaultPlanHeightCM = 170.0

	maxItemsPerMeal = 4
	minServingG     = 20.0
	minItemCalories = 20.0
	// maxShareOfMeal caps one food's share of what is left of a meal.
	maxShareOfMeal = 0.4
)

var activityMultipliers = map[string]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// macroRatios holds the protein, carbs and fat shares of total energy.
var macroRatios = map[string][3]float64{
	domain.MacroBalanced:    {0.30, 0.40, 0.30},
	domain.MacroHighProtein: {0.40, 0.30, 0.30},
	domain.MacroLowCarb:     {0.35, 0.25, 0.40},
	domain.MacroKeto:        {0.30, 0.10, 0.60},
}

var goalFactors = map[string]float64{
	domain.PlanGoalWeightLoss:  0.8,
	domain.PlanGoalMaintenance: 1.0,
	domain.PlanGoalMuscleGain:  1.1,
	domain.PlanGoalExtremeLoss: 0.7,
	domain.PlanGoalExtremeGain: 1.2,
}

type mealShare struct {
	mealType string
	share    float64
}

var distributions = map[string][]mealShare{
	domain.DistributionStandard: {
		{domain.MealBreakfast, 0.25},
		{domain.MealLunch, 0.35},
		{domain.MealDinner, 0.30},
		{domain.MealSnack, 0.10},
	},
	domain.DistributionIntermittentFasting: {
		{domain.MealLunch, 0.45},
		{domain.MealDinner, 0.45},
		{domain.MealSnack, 0.10},
	},
	domain.DistributionSixSmallMeals: {
		{domain.MealBreakfast, 0.15},
		{domain.MealSnack, 0.10},
		{domain.MealLunch, 0.25},
		{domain.MealSnack, 0.10},
		{domain.MealDinner, 0.25},
		{domain.MealSnack, 0.15},
	},
}

// Foods carrying these tags are dropped for the diet or condition.
var (
	dietExclusions = map[string][]string{
		domain.DietVegetarian: {"meat", "fish"},
		domain.DietVegan:      {"meat", "fish", "dairy", "egg"},
	}
	conditionExclusions = map[string][]string{
		domain.ConditionDiabetes:     {"high_gi"},
		domain.ConditionHypertension: {"high_sodium"},
	}
)

type MealPlanService interface {
	// Generate builds a one-day plan from the user's profile and stores it.
	Generate(ctx context.Context, userID uuid.UUID, req *domain.GenerateMealPlanRequest) (*domain.MealPlan, error)
	// History lists stored plans newest first.
	History(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*domain.MealPlanListResponse, error)
	Feedback(ctx context.Context, planID uuid.UUID, req *domain.MealPlanFeedbackRequest) (*domain.MealPlan, error)
}

type mealPlanService struct {
	repo      repository.MealPlanRepository
	userRepo  repository.UserRepository
	loadFoods FoodLoader
	logger    *zap.Logger
	now       func() time.Time

	mu    sync.Mutex
	foods []domain.Food
}

func NewMealPlanService(repo repository.MealPlanRepository, userRepo repository.UserRepository, loadFoods FoodLoader, logger *zap.Logger) MealPlanService {
	return &mealPlanService{
		repo:      repo,
		userRepo:  userRepo,
		loadFoods: loadFoods,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *mealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *domain.GenerateMealPlanRequest) (*domain.MealPlan, error) {
	opts := withPlanDefaults(*req)
	ctx, span := startSpan(ctx, "MealPlanService.Generate",
		map[string]any{"user_id": userID.String(), "request": opts},
		attribute.String("user.id", userID.String()),
		attribute.String("meal_plan.goal", opts.Goal),
	)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		span.End()
		return nil, err
	}
	catalog, err := s.catalog()
	if err != nil {
		span.End()
		return nil, err
	}

	profile := planProfileFor(user, s.now())
	tdee := basalMetabolicRate(profile) * activityMultipliers[opts.ActivityLevel]
	targets := adjustForGoal(macroTargets(tdee, opts.MacroProfile), opts.Goal)

	meals, totals := buildMeals(filterFoods(catalog, opts), targets.Calories, distributions[opts.Distribution])
	plan := &domain.MealPlan{
		UserID:              userID,
		Goal:                opts.Goal,
		MacroProfile:        opts.MacroProfile,
		ActivityLevel:       opts.ActivityLevel,
		Distribution:        opts.Distribution,
		DailyCaloriesTarget: int(targets.Calories),
		ProteinTargetG:      round(targets.ProteinG, 1),
		CarbsTargetG:        round(targets.CarbsG, 1),
		FatTargetG:          round(targets.FatG, 1),
		Meals:               meals,
		Totals:              totals,
		AlgorithmVersion:    MealPlanAlgorithmVersion,
	}
	plan.Recommendations = planRecommendations(plan, opts)

	if err := s.repo.Create(ctx, plan); err != nil {
		span.End()
		return nil, err
	}

	s.logger.Info("meal plan generated",
		zap.String("user_id", userID.String()),
		zap.String("plan_id", plan.ID.String()),
		zap.Int("calories_target", plan.DailyCaloriesTarget),
		zap.Float64("calories_planned", plan.Totals.Calories),
	)
	endSpan(span, map[string]any{
		"daily_calories_target": plan.DailyCaloriesTarget,
		"totals":                plan.Totals,
		"meals":                 len(plan.Meals),
	})
	return plan, nil
}

func (s *mealPlanService) History(ctx context.Context, userID uuid.UUID, limit int, cursor string) (*domain.MealPlanListResponse, error) {
	if err := ensureUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	var after *pagination.Cursor
	if cursor != "" {
		c, err := pagination.DecodeCursor(cursor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		after = c
	}

	limit = pagination.NormalizeLimit(limit)
	plans, err := s.repo.List(ctx, userID, limit, after)
	if err != nil {
		return nil, err
	}
	page, next := pagination.Page(plans, limit, func(p domain.MealPlan) pagination.Cursor {
		return pagination.At(p.CreatedAt, p.ID)
	})
	if page == nil {
		page = []domain.MealPlan{}
	}
	return &domain.MealPlanListResponse{
		Data:       page,
		Pagination: domain.PaginationResponse{NextCursor: next, HasMore: next != ""},
	}, nil
}

func (s *mealPlanService) Feedback(ctx context.Context, planID uuid.UUID, req *domain.MealPlanFeedbackRequest) (*domain.MealPlan, error) {
	if req.Empty() {
		return nil, fmt.Errorf("%w: feedback must set at least one field", domain.ErrInvalidInput)
	}
	plan, err := s.repo.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		plan.UserRating = req.Rating
	}
	if req.Followed != nil {
		plan.UserFollowed = req.Followed
		if *req.Followed {
			at := s.now().UTC()
			plan.FollowedAt = &at
		}
	}
	if req.Feedback != nil {
		plan.UserFeedback = req.Feedback
	}
	if len(req.Symptoms) > 0 {
		symptoms := make([]string, 0, len(req.Symptoms))
		for _, raw := range req.Symptoms {
			if name := normalizeSymptom(raw); name != "" {
				symptoms = append(symptoms, name)
			}
		}
		plan.SymptomsReported = symptoms
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// catalog parses the food catalog on first use. A failed load is retried on
// the next call.
func (s *mealPlanService) catalog() ([]domain.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.foods != nil {
		return s.foods, nil
	}
	raw, err := s.loadFoods()
	if err != nil {
		return nil, fmt.Errorf("load food catalog: %w", err)
	}
	var foods []domain.Food
	if err := yaml.Unmarshal(raw, &foods); err != nil {
		return nil, fmt.Errorf("parse food catalog: %w", err)
	}
	if len(foods) == 0 {
		return nil, errors.New("food catalog is empty")
	}
	s.foods = foods
	return foods, nil
}

func withPlanDefaults(req domain.GenerateMealPlanRequest) domain.GenerateMealPlanRequest {
	if req.Goal == "" {
		req.Goal = domain.PlanGoalMaintenance
	}
	if req.MacroProfile == "" {
		req.MacroProfile = domain.MacroBalanced
	}
	if req.ActivityLevel == "" {
		req.ActivityLevel = domain.ActivityModerate
	}
	if req.Distribution == "" {
		req.Distribution = domain.DistributionStandard
	}
	return req
}

type planProfile struct {
	female   bool
	weightKG float64
	heightCM float64
	age      int
}

// planProfileFor fills missing profile fields with adult defaults.
func planProfileFor(user *domain.User, now time.Time) planProfile {
	p := planProfile{
		female:   strings.EqualFold(user.Gender, "female"),
		weightKG: defaultPlanWeightKG,
		heightCM: defaultPlanHeightCM,
		age:      defaultPlanAge,
	}
	if user.WeightKG != nil && *user.WeightKG > 0 {
		p.weightKG = *user.WeightKG
	}
	if user.HeightCM != nil && *user.HeightCM > 0 {
		p.heightCM = *user.HeightCM
	}
	if age := user.Age(now); age != nil {
		p.age = min(max(*age, minPlanAge), maxPlanAge)
	}
	return p
}

// basalMetabolicRate uses the Mifflin-St Jeor equation.
func basalMetabolicRate(p planProfile) float64 {
	bmr := 10*p.weightKG + 6.25*p.heightCM - 5*float64(p.age)
	if p.female {
		return bmr - 161
	}
	return bmr + 5
}

func macroTargets(calories float64, profile string) domain.Macros {
	r, ok := macroRatios[profile]
	if !ok {
		r = macroRatios[domain.MacroBalanced]
	}
	return domain.Macros{
		Calories: calories,
		ProteinG: calories * r[0] / 4,
		CarbsG:   calories * r[1] / 4,
		FatG:     calories * r[2] / 9,
	}
}

// adjustForGoal scales the targets by the goal factor. Protein is held for
// loss goals to preserve lean mass.
func adjustForGoal(t domain.Macros, goal string) domain.Macros {
	f, ok := goalFactors[goal]
	if !ok {
		return t
	}
	out := domain.Macros{
		Calories: t.Calories * f,
		ProteinG: t.ProteinG * f,
		CarbsG:   t.CarbsG * f,
		FatG:     t.FatG * f,
	}
	if goal == domain.PlanGoalWeightLoss || goal == domain.PlanGoalExtremeLoss {
		out.ProteinG = t.ProteinG
	}
	return out
}

func filterFoods(foods []domain.Food, opts domain.GenerateMealPlanRequest) []domain.Food {
	banned := map[string]bool{}
	for _, tag := range dietExclusions[opts.DietType] {
		banned[tag] = true
	}
	for _, c := range opts.Conditions {
		for _, tag := range conditionExclusions[strings.ToLower(c)] {
			banned[tag] = true
		}
	}
	allergies := make([]string, 0, len(opts.Allergies))
	for _, a := range opts.Allergies {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			allergies = append(allergies, a)
		}
	}

	out := make([]domain.Food, 0, len(foods))
	for _, f := range foods {
		if excluded(f, banned, allergies) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// excluded matches allergies against the food name and tags by substring,
// so "nut" also drops "peanut" and "tree_nut" foods.
func excluded(f domain.Food, banned map[string]bool, allergies []string) bool {
	name := strings.ToLower(f.Name)
	for _, tag := range f.Tags {
		if banned[strings.ToLower(tag)] {
			return true
		}
	}
	for _, a := range allergies {
		if strings.Contains(name, a) {
			return true
		}
		for _, tag := range f.Tags {
			if strings.Contains(strings.ToLower(tag), a) {
				return true
			}
		}
	}
	return false
}

func buildMeals(foods []domain.Food, calories float64, shares []mealShare) ([]domain.PlannedMeal, domain.Macros) {
	meals := make([]domain.PlannedMeal, 0, len(shares))
	var totals domain.Macros
	for _, ms := range shares {
		target := int(calories * ms.share)
		meal := planMeal(rankFoods(foods, ms.mealType), ms.mealType, target)
		totals.Calories += meal.Nutrition.Calories
		totals.ProteinG += meal.Nutrition.ProteinG
		totals.CarbsG += meal.Nutrition.CarbsG
		totals.FatG += meal.Nutrition.FatG
		meals = append(meals, meal)
	}
	totals.ProteinG = round(totals.ProteinG, 1)
	totals.CarbsG = round(totals.CarbsG, 1)
	totals.FatG = round(totals.FatG, 1)
	return meals, totals
}

// planMeal fills the meal from the ranked foods until the target is nearly
// reached or the meal holds maxItemsPerMeal items.
func planMeal(ranked []domain.Food, mealType string, target int) domain.PlannedMeal {
	meal := domain.PlannedMeal{MealType: mealType, TargetCalories: target, Items: []domain.PlannedFood{}}
	remaining := float64(target)
	var cal, protein, carbs, fat float64

	for _, f := range ranked {
		if len(meal.Items) >= maxItemsPerMeal || remaining <= minItemCalories {
			break
		}
		if f.CaloriesPer100g <= 0 {
			continue
		}
		perGram := f.CaloriesPer100g / 100
		serving := f.ServingG
		if serving <= 0 {
			serving = 100
		}
		grams := math.Max(minServingG, math.Min(math.Min(serving, remaining/perGram), remaining*maxShareOfMeal/perGram))
		calories := grams * perGram
		if calories <= minItemCalories {
			continue
		}

		item := domain.PlannedFood{
			Name:     f.Name,
			Grams:    int(grams),
			Calories: int(calories),
			ProteinG: round(grams*f.ProteinPer100g/100, 1),
			CarbsG:   round(grams*f.CarbsPer100g/100, 1),
			FatG:     round(grams*f.FatPer100g/100, 1),
		}
		meal.Items = append(meal.Items, item)
		remaining -= calories
		cal += float64(item.Calories)
		protein += item.ProteinG
		carbs += item.CarbsG
		fat += item.FatG
	}

	meal.Nutrition = domain.Macros{
		Calories: cal,
		ProteinG: round(protein, 1),
		CarbsG:   round(carbs, 1),
		FatG:     round(fat, 1),
	}
	return meal
}

// Criterion weights for protein density, fibre proxy and meal suitability.
var rankWeights = [3]float64{0.4, 0.3, 0.3}

// rankFoods orders foods by TOPSIS closeness to the ideal food for the meal
// type. Ties are broken by name.
func rankFoods(foods []domain.Food, mealType string) []domain.Food {
	if len(foods) == 0 {
		return nil
	}

	scores := make([][3]float64, len(foods))
	for i, f := range foods {
		calories := f.CaloriesPer100g
		if calories <= 0 {
			calories = 1
		}
		scores[i] = [3]float64{
			f.ProteinPer100g / calories,
			f.CarbsPer100g / calories * 0.1,
			mealSuitability(f, mealType),
		}
	}

	var norms [3]float64
	for _, s := range scores {
		for c := range s {
			norms[c] += s[c] * s[c]
		}
	}
	for c := range norms {
		norms[c] = math.Sqrt(norms[c])
	}

	weighted := make([][3]float64, len(scores))
	ideal := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	worst := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	for i, s := range scores {
		for c := range s {
			v := 0.0
			if norms[c] > 0 {
				v = s[c] / norms[c] * rankWeights[c]
			}
			weighted[i][c] = v
			ideal[c] = math.Max(ideal[c], v)
			worst[c] = math.Min(worst[c], v)
		}
	}

	closeness := make([]float64, len(foods))
	for i, w := range weighted {
		var dBest, dWorst float64
		for c := range w {
			dBest += (w[c] - ideal[c]) * (w[c] - ideal[c])
			dWorst += (w[c] - worst[c]) * (w[c] - worst[c])
		}
		dBest, dWorst = math.Sqrt(dBest), math.Sqrt(dWorst)
		if dBest+dWorst > 0 {
			closeness[i] = dWorst / (dBest + dWorst)
		}
	}

	order := make([]int, len(foods))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if closeness[ia] != closeness[ib] {
			return closeness[ia] > closeness[ib]
		}
		return foods[ia].Name < foods[ib].Name
	})

	ranked := make([]domain.Food, len(order))
	for i, idx := range order {
		ranked[i] = foods[idx]
	}
	return ranked
}

// mealSuitability favours carbs and protein at breakfast, balanced protein
// and fat for main meals, and light foods as snacks.
func mealSuitability(f domain.Food, mealType string) float64 {
	switch mealType {
	case domain.MealBreakfast:
		return f.CarbsPer100g*0.3 + f.ProteinPer100g*0.2
	case domain.MealLunch, domain.MealDinner:
		return f.ProteinPer100g*0.4 + f.FatPer100g*0.1
	default:
		if f.CaloriesPer100g < 200 {
			return 1
		}
		return 0.5
	}
}

func planRecommendations(plan *domain.MealPlan, opts domain.GenerateMealPlanRequest) []string {
	recs := []string{}
	target := float64(plan.DailyCaloriesTarget)
	if plan.Totals.Calories < target*0.9 {
		recs = append(recs, fmt.Sprintf("Your meal plan is %d calories below your target. Consider adding more food to reach your %d calorie goal.",
			int(target-plan.Totals.Calories), plan.DailyCaloriesTarget))
	}
	if plan.Totals.ProteinG < plan.ProteinTargetG*0.8 {
		recs = append(recs, fmt.Sprintf("Your protein intake is below target. Aim for %sg of protein daily to support your goals.",
			formatOneDecimal(plan.ProteinTargetG)))
	}

	for _, c := range opts.Conditions {
		switch strings.ToLower(c) {
		case domain.ConditionDiabetes:
			if plan.Totals.CarbsG > 150 {
				recs = append(recs, "Monitor your carbohydrate intake carefully. Consider spreading carbs evenly throughout the day to manage blood sugar.")
			}
		case domain.ConditionHypertension:
			recs = append(recs, "Keep sodium intake low. Choose fresh foods over processed ones and season with herbs instead of salt.")
		}
	}

	recs = append(recs, "Stay hydrated by drinking at least 8 glasses of water daily.")
	if opts.Goal == domain.PlanGoalWeightLoss || opts.Goal == domain.PlanGoalExtremeLoss {
		recs = append(recs, "Combine this meal plan with regular physical activity for best results.")
	}
	return recs
}
