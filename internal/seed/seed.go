package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/healthsync/healthsync/internal/config"
	"github.com/healthsync/healthsync/internal/domain"
	"github.com/healthsync/healthsync/internal/service"
)

const seededDays = 40

// seedNamespace derives stable IDs for seeded rows so reruns do not duplicate them.
var seedNamespace = uuid.MustParse("6f1c2b0e-3f5a-4c1e-9d7a-2b8e4f0a9c11")

type profile struct {
	user        domain.User
	startWeight float64
	weeklyDelta float64
	systolic    int
	sugar       float64
	intolerance string
}

func ptr[T any](v T) *T { return &v }

func profiles() []profile {
	return []profile{
		{
			user:        domain.User{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Ada Lovelace", DateOfBirth: ptr("1985-12-10"), Gender: "female", HeightCM: ptr(168.0)},
			startWeight: 74, weeklyDelta: -0.4, systolic: 118, sugar: 92, intolerance: "milk",
		},
		{
			user:        domain.User{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Name: "Alan Turing", DateOfBirth: ptr("1972-06-23"), Gender: "male", HeightCM: ptr(180.0)},
			startWeight: 88, weeklyDelta: 0.3, systolic: 142, sugar: 128, intolerance: "bread",
		},
		{
			user:        domain.User{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Name: "Grace Hopper", DateOfBirth: ptr("1990-03-02"), Gender: "female", HeightCM: ptr(160.0)},
			startWeight: 61, weeklyDelta: 0, systolic: 124, sugar: 101,
		},
	}
}

// Run seeds the database with sample users, measurements, symptoms and
// meals. Safe to call multiple times.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	if err := config.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	for _, p := range profiles() {
		user := p.user
		if latest := p.startWeight + p.weeklyDelta*seededDays/7; latest > 0 {
			user.WeightKG = ptr(latest)
		}
		if err := db.WithContext(ctx).Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
		if err := seedProgress(ctx, db, p, now, rng); err != nil {
			return err
		}
		if err := seedMealsAndSymptoms(ctx, db, p, now, rng); err != nil {
			return err
		}
		log.Info("seeded user", zap.String("user_id", user.ID.String()), zap.String("name", user.Name))
	}

	log.Info("seed completed")
	return nil
}

func seedProgress(ctx context.Context, db *gorm.DB, p profile, now time.Time, rng *rand.Rand) error {
	for i := seededDays; i >= 0; i -= 2 {
		ts := now.AddDate(0, 0, -i).Truncate(24 * time.Hour).Add(7 * time.Hour)
		elapsed := float64(seededDays-i) / 7
		weight := p.startWeight + p.weeklyDelta*elapsed + (rng.Float64()-0.5)*0.4

		clientReqID := fmt.Sprintf("seed-progress-%s-%d", p.user.ID, i)
		entry := domain.ProgressEntry{
			UserID:                 p.user.ID,
			WeightKG:               ptr(float64(int(weight*10)) / 10),
			BloodSugar:             ptr(p.sugar + float64(rng.Intn(15)-7)),
			BloodPressureSystolic:  ptr(p.systolic + rng.Intn(11) - 5),
			BloodPressureDiastolic: ptr(p.systolic*2/3 + rng.Intn(7) - 3),
			Timestamp:              ts,
			ClientRequestID:        &clientReqID,
		}
		if err := db.WithContext(ctx).Where("client_request_id = ?", clientReqID).FirstOrCreate(&entry).Error; err != nil {
			return fmt.Errorf("failed to create progress entry: %w", err)
		}
	}
	return nil
}

var (
	plainFoods = []string{"rice", "chicken", "salad", "apple", "oatmeal", "salmon"}
	mealTimes  = map[string]int{domain.MealBreakfast: 8, domain.MealLunch: 13, domain.MealDinner: 19}
)

// seedMealsAndSymptoms logs daily meals. Meals containing the profile's
// intolerance are followed by bloating a few hours later so correlation
// analysis has something to find.
func seedMealsAndSymptoms(ctx context.Context, db *gorm.DB, p profile, now time.Time, rng *rand.Rand) error {
	for i := 14; i >= 1; i-- {
		day := now.AddDate(0, 0, -i).Truncate(24 * time.Hour)
		for mealType, hour := range mealTimes {
			foods := domain.JSONList[domain.FoodItem]{
				{Name: plainFoods[rng.Intn(len(plainFoods))], Calories: float64(150 + rng.Intn(300))},
			}
			trigger := p.intolerance != "" && mealType == domain.MealBreakfast && i%2 == 0
			if trigger {
				foods = append(foods, domain.FoodItem{Name: p.intolerance, Calories: 120})
			}

			var total float64
			for _, f := range foods {
				total += f.Calories
			}
			ts := day.Add(time.Duration(hour) * time.Hour)
			meal := domain.MealLog{
				ID:            uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("meal-%s-%d-%s", p.user.ID, i, mealType))),
				UserID:        p.user.ID,
				MealType:      mealType,
				Foods:         foods,
				TotalCalories: total,
				SymptomsAfter: domain.JSONList[string]{},
				Timestamp:     ts,
			}
			if err := db.WithContext(ctx).Where("id = ?", meal.ID).FirstOrCreate(&meal).Error; err != nil {
				return fmt.Errorf("failed to create meal log: %w", err)
			}

			if trigger {
				symptoms := []string{"bloating", "stomach pain"}
				severity := 3 + rng.Intn(4)
				entry := domain.SymptomLog{
					ID:                    uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("symptom-%s-%d", p.user.ID, i))),
					UserID:                p.user.ID,
					Symptoms:              symptoms,
					Severity:              severity,
					Classification:        service.ClassifySymptoms(symptoms),
					NeedsMedicalAttention: service.NeedsMedicalAttention(symptoms, severity),
					Timestamp:             ts.Add(3 * time.Hour),
				}
				if err := db.WithContext(ctx).Where("id = ?", entry.ID).FirstOrCreate(&entry).Error; err != nil {
					return fmt.Errorf("failed to create symptom log: %w", err)
				}
			}
		}
	}
	return nil
}

// UserIDs lists the IDs of the seeded users.
func UserIDs() []string {
	ps := profiles()
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.user.ID.String())
	}
	return ids
}
