package cart_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"fastgrab/order-svc/internal/cart"
	"fastgrab/order-svc/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingPersistence struct{}

func (failingPersistence) LoadCart(ctx context.Context) ([]domain.CartLine, error) {
	return nil, errors.New("storage unavailable")
}

func (failingPersistence) SaveCart(ctx context.Context, lines []domain.CartLine) error {
	return errors.New("storage unavailable")
}

func item(id, price string) domain.FoodItem {
	return domain.FoodItem{ID: id, Name: id, Price: decimal.RequireFromString(price)}
}

func TestUniqueKey(t *testing.T) {
	tests := []struct {
		name    string
		flavor  string
		variant string
		want    string
	}{
		{name: "plain", want: "pizza-1"},
		{name: "flavor", flavor: "Pesto Swirl", want: "pizza-1-Pesto Swirl"},
		{name: "variant", variant: "large", want: "pizza-1-large"},
		{name: "flavor_and_variant", flavor: "Pesto Swirl", variant: "large", want: "pizza-1-Pesto Swirl-large"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, cart.UniqueKey("pizza-1", testCase.flavor, testCase.variant))
		})
	}
}

func TestStore_AddItemMergesSameKey(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, nil)
	margherita := item("pizza-1", "10.99")

	store.AddItem(ctx, margherita, 2, "Pesto Swirl", "")
	store.AddItem(ctx, margherita, 3, "Pesto Swirl", "")
	store.AddItem(ctx, margherita, 1, "Classic Tomato", "")

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "pizza-1-Pesto Swirl", lines[0].UniqueKey)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 6, store.Count())
}

func TestStore_AddItemDefaultsQuantity(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, nil)

	line := store.AddItem(ctx, item("drink-1", "1.99"), 0, "", "")

	assert.Equal(t, 1, line.Quantity)
}

func TestStore_SetQuantityAndRemove(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, nil)
	store.AddItem(ctx, item("side-1", "3.49"), 1, "", "")
	store.AddItem(ctx, item("soup-1", "5.50"), 1, "", "")

	store.SetQuantity(ctx, "side-1", 4)
	line, ok := store.Line("side-1")
	require.True(t, ok)
	assert.Equal(t, 4, line.Quantity)

	store.SetQuantity(ctx, "side-1", 0)
	_, ok = store.Line("side-1")
	assert.False(t, ok)

	store.SetQuantity(ctx, "soup-1", -3)
	assert.True(t, store.Empty())

	store.RemoveItem(ctx, "missing")
	store.SetQuantity(ctx, "missing", 2)
	assert.True(t, store.Empty())
}

func TestStore_TotalIsExactAfterManyOperations(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, nil)
	rng := rand.New(rand.NewSource(42))

	menu := []struct {
		item  domain.FoodItem
		cents int64
	}{
		{item("drink-1", "1.99"), 199},
		{item("pizza-2", "12.99"), 1299},
		{item("drink-2", "2.49"), 249},
		{item("pizza-4", "13.49"), 1349},
		{item("soup-1", "5.50"), 550},
		{item("side-3", "4.29"), 429},
	}
	quantities := map[string]int64{}
	cents := map[string]int64{}
	for _, m := range menu {
		cents[m.item.ID] = m.cents
	}

	for i := 0; i < 1500; i++ {
		m := menu[rng.Intn(len(menu))]
		switch rng.Intn(3) {
		case 0:
			q := rng.Intn(5) + 1
			store.AddItem(ctx, m.item, q, "", "")
			quantities[m.item.ID] += int64(q)
		case 1:
			q := rng.Intn(8) - 2
			if _, ok := quantities[m.item.ID]; !ok {
				continue
			}
			store.SetQuantity(ctx, m.item.ID, q)
			if q <= 0 {
				delete(quantities, m.item.ID)
			} else {
				quantities[m.item.ID] = int64(q)
			}
		case 2:
			store.RemoveItem(ctx, m.item.ID)
			delete(quantities, m.item.ID)
		}
	}

	var expected int64
	for id, q := range quantities {
		expected += cents[id] * q
	}
	assert.True(t, decimal.New(expected, -2).Equal(store.Total()),
		"expected %s, got %s", decimal.New(expected, -2), store.Total())
}

func TestStore_PersistsAndRestores(t *testing.T) {
	ctx := context.Background()
	persistence := &cart.MemoryPersistence{}

	store := cart.NewStore(ctx, persistence)
	store.AddItem(ctx, item("pizza-1", "10.99"), 2, "", "")

	restored := cart.NewStore(ctx, persistence)
	require.Len(t, restored.Lines(), 1)
	assert.Equal(t, "21.98", restored.Total().StringFixed(2))

	restored.Clear(ctx)
	assert.Empty(t, cart.NewStore(ctx, persistence).Lines())
}

func TestStore_PersistenceFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	store := cart.NewStore(ctx, failingPersistence{})

	store.AddItem(ctx, item("pizza-1", "10.99"), 1, "", "")

	assert.Equal(t, 1, store.Count())
}
