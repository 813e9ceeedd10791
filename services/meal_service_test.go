package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/priyasingh1501/untangle-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestValidateItems(t *testing.T) {
	assert.ErrorIs(t, validateItems(nil), ErrNoItems)
	assert.ErrorIs(t, validateItems([]MealItemRequest{}), ErrNoItems)
	assert.ErrorIs(t, validateItems([]MealItemRequest{{FoodID: "", Grams: 100}}), ErrMissingFood)
	assert.ErrorIs(t, validateItems([]MealItemRequest{{FoodID: "food_rice", Grams: 0}}), ErrInvalidGrams)
	assert.ErrorIs(t, validateItems([]MealItemRequest{{FoodID: "food_rice", Grams: -5}}), ErrInvalidGrams)
	assert.ErrorIs(t, validateItems([]MealItemRequest{{FoodID: "food_rice", Grams: 1001}}), ErrInvalidGrams)
	assert.NoError(t, validateItems([]MealItemRequest{{FoodID: "food_rice", Grams: 1000}}))
}

func TestComputePipeline(t *testing.T) {
	gi := 15
	catalog := &fakeCatalog{profiles: map[string]models.FoodNutrientProfile{
		"food_grilled_chicken_breast": {Name: "Grilled chicken breast", Source: models.SourceLocal,
			Kcal: 165, Protein: 31, Fat: 3.6, Fodmap: models.FodmapLow, NovaClass: 1},
		"food_spinach_raw": {Name: "Spinach, raw", Source: models.SourceLocal,
			Kcal: 23, Protein: 2.9, Carbs: 3.6, Fiber: 2.2, VitaminC: 28.1, GI: &gi,
			Fodmap: models.FodmapLow, NovaClass: 1, Tags: []string{"veg", "leafy"}},
	}}

	svc := &MealService{
		resolver: newTestResolver(catalog, &fakeProvider{}, &fakeProvider{}, nil),
		ai:       &AIAugmentService{log: zap.NewNop().Sugar()}, // no key: baseline passthrough
		log:      zap.NewNop().Sugar(),
	}

	user := &models.User{BodyMassKg: 70, DietGoals: "build muscle"}
	computed, degraded := svc.compute(context.Background(), user, []MealItemRequest{
		{FoodID: "food_grilled_chicken_breast", Grams: 150},
		{FoodID: "food_spinach_raw", Grams: 100},
	}, models.MealContext{PostWorkout: true}, false)

	assert.Equal(t, 0, degraded)

	// Totals: chicken 1.5x + spinach 1x.
	assert.Equal(t, 270.5, computed.Totals.Kcal)
	assert.Equal(t, 49.4, computed.Totals.Protein)

	assert.True(t, computed.Badges.Protein)
	assert.True(t, computed.Badges.Veg)
	require.NotNil(t, computed.Badges.GI)
	assert.Equal(t, 15.0, *computed.Badges.GI)
	assert.Equal(t, models.FodmapLow, computed.Badges.Fodmap)

	assert.GreaterOrEqual(t, computed.Mindful.Score, 3.0)
	assert.Greater(t, computed.Effects.Strength.Score, 5.0)
	assert.False(t, computed.Effects.Strength.AIEnhanced)
	assert.Empty(t, computed.AIInsights)
}

func TestComputeAllPlaceholdersStillScores(t *testing.T) {
	svc := &MealService{
		resolver: newTestResolver(&fakeCatalog{}, &fakeProvider{}, &fakeProvider{}, nil),
		ai:       &AIAugmentService{log: zap.NewNop().Sugar()},
		log:      zap.NewNop().Sugar(),
	}

	computed, degraded := svc.compute(context.Background(), nil, []MealItemRequest{
		{FoodID: "food_not_seeded", Grams: 100},
	}, models.MealContext{}, true)

	assert.Equal(t, 1, degraded)
	assert.True(t, computed.Totals.IsZero())
	assert.Equal(t, 0.0, computed.Mindful.Score)
	assert.Equal(t, "No data", computed.Mindful.Quality)
	assert.Equal(t, 0.0, computed.Effects.FatForming.Score)
	assert.Equal(t, 5.0, computed.Effects.Energizing.Score)
}

// newMockedMealService backs the service with a sqlmock connection so delete
// paths can be exercised without a live database.
func newMockedMealService(t *testing.T) (*MealService, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	return &MealService{db: db, log: zap.NewNop().Sugar()}, mock
}

func TestDeleteMealForeignUserTouchesNothing(t *testing.T) {
	svc, mock := newMockedMealService(t)

	// Meal 9 belongs to user 2; user 7 must not reach the delete statements.
	mock.ExpectQuery(`SELECT \* FROM "meals"`).
		WithArgs(9, 7, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}))

	err := svc.DeleteMeal(7, 9)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMealRemovesOwnedMealAndItems(t *testing.T) {
	svc, mock := newMockedMealService(t)

	mock.ExpectQuery(`SELECT \* FROM "meals"`).
		WithArgs(9, 2, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(9, 2))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "meal_items" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`UPDATE "meals" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.DeleteMeal(2, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveContext(t *testing.T) {
	svc := &MealService{log: zap.NewNop().Sugar()}

	meal := &models.Meal{}
	require.NoError(t, meal.SetContext(models.MealContext{PostWorkout: true, PlantDiversity: 4}))

	// An explicit context wins over whatever the meal stored.
	got := svc.resolveContext(meal, &models.MealContext{AddedSugar: 12})
	assert.Equal(t, models.MealContext{AddedSugar: 12}, got)

	// Omitting the context keeps the stored one.
	got = svc.resolveContext(meal, nil)
	assert.True(t, got.PostWorkout)
	assert.Equal(t, 4, got.PlantDiversity)

	// A corrupt stored context falls back to defaults instead of panicking.
	meal.Context = datatypes.JSON([]byte("{not json"))
	assert.Equal(t, models.MealContext{}, svc.resolveContext(meal, nil))
}
