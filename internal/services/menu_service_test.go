package services

import (
	"testing"

	"cafe-menu/internal/models"
	"cafe-menu/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	return st
}

func newMenuService(t *testing.T) *MenuService {
	t.Helper()
	return NewMenuService(testStore(t), zerolog.Nop())
}

func TestMenuCreate_Defaults(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{
		Name:     "اسپرسو",
		Category: models.CategoryCoffee,
		Price:    45000,
	})
	require.NoError(t, err)

	require.NotEmpty(t, item.ID)
	require.False(t, item.HasDualPricing)
	require.Nil(t, item.PricePremium)
	require.True(t, item.IsAvailable)
	require.False(t, item.CreatedAt.IsZero())
	require.Equal(t, item.CreatedAt, item.UpdatedAt)

	// stable across subsequent reads
	got, err := svc.GetByID(item.ID)
	require.NoError(t, err)
	require.Equal(t, item.ID, got.ID)
	require.Equal(t, "اسپرسو", got.Name)
}

func TestMenuCreate_Validation(t *testing.T) {
	svc := newMenuService(t)

	cases := []struct {
		name string
		req  models.CreateMenuItemRequest
	}{
		{"empty name", models.CreateMenuItemRequest{Name: "  ", Price: 100}},
		{"unknown category", models.CreateMenuItemRequest{Name: "x", Category: "sushi", Price: 100}},
		{"negative price", models.CreateMenuItemRequest{Name: "x", Price: -1}},
		{"dual pricing without premium", models.CreateMenuItemRequest{Name: "x", Price: 100, HasDualPricing: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(&tc.req)
			require.Error(t, err)
			require.True(t, models.IsValidationError(err), "want validation error, got %v", err)
		})
	}

	require.Empty(t, svc.List(false), "failed creates must not persist anything")
}

func TestMenuCreate_EmptyCategoryDefaultsToCoffee(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{Name: "تست", Price: 1000})
	require.NoError(t, err)
	require.Equal(t, models.CategoryCoffee, item.Category)
}

func TestMenuCreate_UniqueIDs(t *testing.T) {
	svc := newMenuService(t)

	ids := make(map[string]bool)
	for i := 0; i < 50; i++ {
		item, err := svc.Create(&models.CreateMenuItemRequest{Name: "آیتم", Price: 1000})
		require.NoError(t, err)
		require.False(t, ids[item.ID], "duplicate id %s", item.ID)
		ids[item.ID] = true
	}
}

func TestMenuList_SortedByOrderIndex(t *testing.T) {
	svc := newMenuService(t)

	for _, idx := range []int{30, 10, 20} {
		_, err := svc.Create(&models.CreateMenuItemRequest{Name: "آیتم", Price: 1000, OrderIndex: idx})
		require.NoError(t, err)
	}

	items := svc.List(false)
	require.Len(t, items, 3)
	require.Equal(t, 10, items[0].OrderIndex)
	require.Equal(t, 20, items[1].OrderIndex)
	require.Equal(t, 30, items[2].OrderIndex)
}

func TestMenuList_AvailableFilter(t *testing.T) {
	svc := newMenuService(t)

	off := false
	_, err := svc.Create(&models.CreateMenuItemRequest{Name: "موجود", Price: 1000})
	require.NoError(t, err)
	hidden, err := svc.Create(&models.CreateMenuItemRequest{Name: "ناموجود", Price: 1000, IsAvailable: &off})
	require.NoError(t, err)

	require.Len(t, svc.List(false), 2)

	available := svc.List(true)
	require.Len(t, available, 1)
	require.NotEqual(t, hidden.ID, available[0].ID)
}

func TestMenuUpdate_Idempotent(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{Name: "لته", Price: 42000})
	require.NoError(t, err)

	price := 48000
	patch := &models.UpdateMenuItemRequest{Price: &price}

	first, err := svc.Update(item.ID, patch)
	require.NoError(t, err)
	second, err := svc.Update(item.ID, patch)
	require.NoError(t, err)

	// identical visible state aside from updated_at
	first.UpdatedAt = second.UpdatedAt
	require.Equal(t, first, second)
	require.Equal(t, 48000, second.Price)
	require.Equal(t, "لته", second.Name)
}

func TestMenuUpdate_ClearsPremiumWhenDualPricingOff(t *testing.T) {
	svc := newMenuService(t)

	premium := 55000
	item, err := svc.Create(&models.CreateMenuItemRequest{
		Name:           "اسپرسو",
		Price:          45000,
		HasDualPricing: true,
		PricePremium:   &premium,
	})
	require.NoError(t, err)
	require.NotNil(t, item.PricePremium)

	off := false
	updated, err := svc.Update(item.ID, &models.UpdateMenuItemRequest{HasDualPricing: &off})
	require.NoError(t, err)
	require.False(t, updated.HasDualPricing)
	require.Nil(t, updated.PricePremium)
}

func TestMenuUpdate_DualPricingRequiresPremium(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{Name: "آمریکانو", Price: 30000})
	require.NoError(t, err)
	require.Nil(t, item.PricePremium)

	// turning dual pricing on without a premium price must not persist
	on := true
	_, err = svc.Update(item.ID, &models.UpdateMenuItemRequest{HasDualPricing: &on})
	require.Error(t, err)
	require.True(t, models.IsValidationError(err), "want validation error, got %v", err)

	got, err := svc.GetByID(item.ID)
	require.NoError(t, err)
	require.False(t, got.HasDualPricing)
	require.Nil(t, got.PricePremium)

	// supplying the premium in the same patch is accepted
	premium := 40000
	updated, err := svc.Update(item.ID, &models.UpdateMenuItemRequest{HasDualPricing: &on, PricePremium: &premium})
	require.NoError(t, err)
	require.True(t, updated.HasDualPricing)
	require.NotNil(t, updated.PricePremium)
	require.Equal(t, 40000, *updated.PricePremium)
}

func TestMenuUpdate_NotFound(t *testing.T) {
	svc := newMenuService(t)

	name := "x"
	_, err := svc.Update("missing", &models.UpdateMenuItemRequest{Name: &name})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMenuDelete_UnknownIDLeavesCollectionUnchanged(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{Name: "لته", Price: 42000})
	require.NoError(t, err)

	err = svc.Delete("missing")
	require.ErrorIs(t, err, models.ErrNotFound)

	items := svc.List(false)
	require.Len(t, items, 1)
	require.Equal(t, item.ID, items[0].ID)
}

func TestMenuDelete_RemovesItem(t *testing.T) {
	svc := newMenuService(t)

	item, err := svc.Create(&models.CreateMenuItemRequest{Name: "لته", Price: 42000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(item.ID))
	require.Empty(t, svc.List(false))

	_, err = svc.GetByID(item.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}
