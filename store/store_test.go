package store

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"retail/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPersisted(t *testing.T, adapter *memAdapter, key string, expected any) {
	t.Helper()
	want, err := json.Marshal(expected)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), adapter.raw(key))
}

func TestLoadFailsOpenPerCollection(t *testing.T) {
	adapter := newMemAdapter()
	adapter.data[KeySales] = []byte(`[{"id":"s1","items":[],"total":"5","paymentMethod":"cash","date":"2025-03-10T09:00:00Z"}]`)
	adapter.data[KeyExpenses] = []byte(`not json`)
	adapter.failLoad[KeyProducts] = true

	st := New(adapter)
	st.Load()

	assert.False(t, st.Loading())
	assert.Empty(t, st.Products())
	assert.Empty(t, st.Expenses())
	assert.Empty(t, st.Customers())
	require.Len(t, st.Sales(), 1)
	assert.Equal(t, "s1", st.Sales()[0].ID)
	assert.True(t, st.Sales()[0].Total.Equal(decimal.NewFromInt(5)))
}

func TestProductCRUDPersistsFullCollection(t *testing.T) {
	st, adapter := testStore(t)

	a := mustProduct(t, st, "Tilapia", "5.00", 10)
	assertPersisted(t, adapter, KeyProducts, st.Products())

	b := mustProduct(t, st, "Mackerel", "8.25", 3)
	assertPersisted(t, adapter, KeyProducts, st.Products())

	name := "Red Snapper"
	_, err := st.UpdateProduct(b.ID, model.ProductPatch{Name: &name})
	require.NoError(t, err)
	assertPersisted(t, adapter, KeyProducts, st.Products())

	require.NoError(t, st.DeleteProduct(a.ID))
	assertPersisted(t, adapter, KeyProducts, st.Products())

	reloaded := New(adapter)
	reloaded.Load()
	got, err := json.Marshal(reloaded.Products())
	require.NoError(t, err)
	want, err := json.Marshal(st.Products())
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(got))

	require.Len(t, reloaded.Products(), 1)
	assert.Equal(t, "Red Snapper", reloaded.Products()[0].Name)
}

func TestCreateProductValidation(t *testing.T) {
	st, adapter := testStore(t)

	cases := []model.NewProduct{
		{Name: " ", Category: model.CategoryDrinks, Price: decimal.NewFromInt(1)},
		{Name: "Malt", Category: "juice", Price: decimal.NewFromInt(1)},
		{Name: "Malt", Category: model.CategoryDrinks, Price: decimal.NewFromInt(-1)},
		{Name: "Malt", Category: model.CategoryDrinks, Price: decimal.NewFromInt(1), Stock: -2},
	}
	for _, in := range cases {
		_, err := st.CreateProduct(in)
		assert.True(t, IsValidation(err), "expected validation error for %+v", in)
	}
	assert.Empty(t, st.Products())
	assert.Equal(t, 0, adapter.saves)
}

func TestUpdateProductRejectsNegativeStock(t *testing.T) {
	st, _ := testStore(t)
	p := mustProduct(t, st, "Tilapia", "5", 2)

	stock := -1
	_, err := st.UpdateProduct(p.ID, model.ProductPatch{Stock: &stock})
	assert.True(t, IsValidation(err))

	got, ok := st.Product(p.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.Stock)
}

func TestUpdateAndDeleteUnknownProduct(t *testing.T) {
	st, _ := testStore(t)

	_, err := st.UpdateProduct("missing", model.ProductPatch{})
	assert.True(t, errors.Is(err, ErrNotFound))

	err = st.DeleteProduct("missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProductUpdatedAtNeverMovesBackwards(t *testing.T) {
	current := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	st := New(newMemAdapter(), WithClock(func() time.Time { return current }))
	st.Load()

	p, err := st.CreateProduct(model.NewProduct{Name: "Tilapia", Category: model.CategoryFreshFish, Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	current = current.Add(-time.Hour)
	price := decimal.NewFromInt(6)
	updated, err := st.UpdateProduct(p.ID, model.ProductPatch{Price: &price})
	require.NoError(t, err)

	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
	assert.True(t, updated.Price.Equal(price))
}

func TestCreateProductSaveFailureKeepsMemory(t *testing.T) {
	st, adapter := testStore(t)
	mustProduct(t, st, "Tilapia", "5", 1)

	adapter.failSave = true
	_, err := st.CreateProduct(model.NewProduct{Name: "Mackerel", Category: model.CategoryFreshFish, Price: decimal.NewFromInt(3)})
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.True(t, errors.Is(err, errInjected))

	assert.Len(t, st.Products(), 1)
	assertPersisted(t, adapter, KeyProducts, st.Products())
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	st := New(newMemAdapter())
	st.Load()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		p, err := st.CreateProduct(model.NewProduct{Name: "Item", Category: model.CategorySpices, Price: decimal.Zero})
		require.NoError(t, err)
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		_, err = uuid.Parse(p.ID)
		require.NoError(t, err)
	}
}

func TestImportProducts(t *testing.T) {
	st, adapter := testStore(t)

	created, err := st.ImportProducts([]model.NewProduct{
		{Name: "Tilapia", Category: model.CategoryFreshFish, Price: decimal.NewFromInt(5), Stock: 4},
		{Name: "Malt", Category: model.CategoryDrinks, Price: decimal.NewFromInt(2), Stock: 12},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, 1, adapter.saves)
	assertPersisted(t, adapter, KeyProducts, st.Products())

	_, err = st.ImportProducts([]model.NewProduct{
		{Name: "Salt", Category: model.CategorySpices, Price: decimal.NewFromInt(1)},
		{Name: "", Category: model.CategorySpices, Price: decimal.NewFromInt(1)},
	})
	assert.True(t, IsValidation(err))
	assert.Len(t, st.Products(), 2)
}

func TestSearchProducts(t *testing.T) {
	st, _ := testStore(t)
	mustProduct(t, st, "Smoked Tilapia", "5", 1)
	mustProduct(t, st, "Mackerel", "5", 1)
	_, err := st.CreateProduct(model.NewProduct{Name: "Tilapia Juice", Category: model.CategoryDrinks, Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	assert.Len(t, st.SearchProducts("tilapia", ""), 2)
	assert.Len(t, st.SearchProducts("TILAPIA", model.CategoryDrinks), 1)
	assert.Len(t, st.SearchProducts("", model.CategoryFreshFish), 2)
	assert.Empty(t, st.SearchProducts("tuna", ""))
}

func TestCustomerLifecycle(t *testing.T) {
	st, adapter := testStore(t)

	_, err := st.CreateCustomer(model.NewCustomer{Name: "  "})
	assert.True(t, IsValidation(err))

	c, err := st.CreateCustomer(model.NewCustomer{Name: "Ama Mensah", PhoneNumber: "0244123456", Email: "Ama@Example.com"})
	require.NoError(t, err)
	assert.True(t, c.TotalPurchases.IsZero())
	assert.Nil(t, c.LastPurchaseDate)

	address := "Market Road 4"
	updated, err := st.UpdateCustomer(c.ID, model.CustomerPatch{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, address, updated.Address)
	assertPersisted(t, adapter, KeyCustomers, st.Customers())

	_, err = st.UpdateCustomer("missing", model.CustomerPatch{})
	assert.True(t, errors.Is(err, ErrNotFound))

	assert.Len(t, st.SearchCustomers("ama"), 1)
	assert.Len(t, st.SearchCustomers("0244"), 1)
	assert.Len(t, st.SearchCustomers("example.COM"), 1)
	assert.Empty(t, st.SearchCustomers("kofi"))
	assert.Len(t, st.SearchCustomers(""), 1)
}

func TestAddExpense(t *testing.T) {
	st, adapter := testStore(t)

	_, err := st.AddExpense(model.NewExpense{Category: "fuel", Amount: decimal.NewFromInt(1), Description: "x"})
	assert.True(t, IsValidation(err))
	_, err = st.AddExpense(model.NewExpense{Category: model.ExpenseIce, Amount: decimal.NewFromInt(-1), Description: "x"})
	assert.True(t, IsValidation(err))
	_, err = st.AddExpense(model.NewExpense{Category: model.ExpenseIce, Amount: decimal.NewFromInt(1)})
	assert.True(t, IsValidation(err))

	e, err := st.AddExpense(model.NewExpense{Category: model.ExpenseIce, Amount: decimal.RequireFromString("12.40"), Description: "ice blocks"})
	require.NoError(t, err)
	assert.False(t, e.Date.IsZero())
	assertPersisted(t, adapter, KeyExpenses, st.Expenses())
}

func TestReset(t *testing.T) {
	st, adapter := testStore(t)
	mustProduct(t, st, "Tilapia", "5", 1)
	_, err := st.CreateCustomer(model.NewCustomer{Name: "Kofi"})
	require.NoError(t, err)

	require.NoError(t, st.Reset())
	assert.Empty(t, st.Products())
	assert.Empty(t, st.Customers())
	assert.Empty(t, adapter.raw(KeyProducts))

	st.Load()
	assert.Empty(t, st.Products())
}

func TestMutationDuringLoadIsNotLost(t *testing.T) {
	st, adapter := testStore(t)
	mustProduct(t, st, "Tilapia", "5", 10)

	entered := make(chan struct{}, len(AllKeys))
	release := make(chan struct{})
	adapter.onLoad = func(string) {
		entered <- struct{}{}
		<-release
	}

	loaded := make(chan struct{})
	go func() {
		st.Load()
		close(loaded)
	}()
	<-entered
	assert.True(t, st.Loading())

	created := make(chan error, 1)
	go func() {
		_, err := st.CreateProduct(model.NewProduct{
			Name: "Sardines", Category: model.CategoryFrozenFish, Price: decimal.NewFromInt(2), Stock: 4,
		})
		created <- err
	}()

	select {
	case <-created:
		t.Fatal("product was created while the reload was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-loaded
	require.NoError(t, <-created)

	assert.Len(t, st.Products(), 2)
	assertPersisted(t, adapter, KeyProducts, st.Products())
}
