package store

import (
	"encoding/json"
	"log"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"retail/model"

	"github.com/google/uuid"
)

// 永続化キー (1キー = 1コレクション)
const (
	KeyProducts     = "products"
	KeySales        = "sales"
	KeyExpenses     = "expenses"
	KeyCustomers    = "customers"
	KeyTransactions = "inventory_transactions"
)

var AllKeys = []string{KeyProducts, KeySales, KeyExpenses, KeyCustomers, KeyTransactions}

// Adapter は永続化アダプタです。database.KVStore が実装します。
type Adapter interface {
	// Load は最後に保存された内容を返します。未保存なら nil, nil です。
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	// SaveAll は全エントリを1回の操作で保存します。途中失敗時は何も保存しません。
	SaveAll(entries map[string][]byte) error
	Clear(keys ...string) error
}

// Store は5つのコレクションを保持する唯一の窓口です。
// 書き込みは mu で直列化され、保存に成功した場合のみメモリ上の状態を差し替えます。
type Store struct {
	adapter Adapter
	now     func() time.Time
	newID   func() string

	loading atomic.Bool

	mu           sync.RWMutex
	products     []model.Product
	sales        []model.Sale
	expenses     []model.Expense
	customers    []model.Customer
	transactions []model.InventoryTransaction
}

type Option func(*Store)

// WithClock は現在時刻の取得元を差し替えます。
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator はID採番を差し替えます。
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

func New(adapter Adapter, opts ...Option) *Store {
	s := &Store{
		adapter: adapter,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load は5つのコレクションを並行して読み込み、メモリ上の状態を置き換えます。
// 読み込みに失敗したコレクションは空になります。他のコレクションには影響しません。
// 読み込み中は書き込みロックを保持するため、同時に来た更新は読み込み完了後に適用されます。
func (s *Store) Load() {
	s.loading.Store(true)
	defer s.loading.Store(false)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		products     []model.Product
		sales        []model.Sale
		expenses     []model.Expense
		customers    []model.Customer
		transactions []model.InventoryTransaction
		wg           sync.WaitGroup
	)

	wg.Add(len(AllKeys))
	go func() { defer wg.Done(); products = loadCollection[model.Product](s.adapter, KeyProducts) }()
	go func() { defer wg.Done(); sales = loadCollection[model.Sale](s.adapter, KeySales) }()
	go func() { defer wg.Done(); expenses = loadCollection[model.Expense](s.adapter, KeyExpenses) }()
	go func() { defer wg.Done(); customers = loadCollection[model.Customer](s.adapter, KeyCustomers) }()
	go func() {
		defer wg.Done()
		transactions = loadCollection[model.InventoryTransaction](s.adapter, KeyTransactions)
	}()
	wg.Wait()

	s.products = products
	s.sales = sales
	s.expenses = expenses
	s.customers = customers
	s.transactions = transactions

	log.Printf("INFO: loaded %d products, %d sales, %d expenses, %d customers, %d inventory transactions",
		len(products), len(sales), len(expenses), len(customers), len(transactions))
}

// Loading は Load の実行中に true を返します。
func (s *Store) Loading() bool {
	return s.loading.Load()
}

func loadCollection[T any](adapter Adapter, key string) []T {
	data, err := adapter.Load(key)
	if err != nil {
		log.Printf("WARN: failed to load %s, using empty collection: %v", key, err)
		return []T{}
	}
	if len(data) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("WARN: failed to decode %s, using empty collection: %v", key, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// Reset は全コレクションを削除します。
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.Clear(AllKeys...); err != nil {
		return &PersistenceError{Key: strings.Join(AllKeys, ","), Err: err}
	}
	s.products = nil
	s.sales = nil
	s.expenses = nil
	s.customers = nil
	s.transactions = nil
	return nil
}

func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.products)
}

func (s *Store) Sales() []model.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.sales)
}

func (s *Store) Expenses() []model.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.expenses)
}

func (s *Store) Customers() []model.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.customers)
}

func (s *Store) Transactions() []model.InventoryTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneOrEmpty(s.transactions)
}

// Snapshot は集計用に全コレクションの写しを返します。
func (s *Store) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.Snapshot{
		Products:     cloneOrEmpty(s.products),
		Sales:        cloneOrEmpty(s.sales),
		Expenses:     cloneOrEmpty(s.expenses),
		Customers:    cloneOrEmpty(s.customers),
		Transactions: cloneOrEmpty(s.transactions),
	}
}

func (s *Store) Product(id string) (model.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexProduct(s.products, id); i >= 0 {
		return s.products[i], true
	}
	return model.Product{}, false
}

func (s *Store) Customer(id string) (model.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexCustomer(s.customers, id); i >= 0 {
		return s.customers[i], true
	}
	return model.Customer{}, false
}

// change は1回の保存で書き込むコレクションです。
type change struct {
	key   string
	items any
}

// persist は changes を保存します。1件なら Save、複数なら SaveAll を使います。
func (s *Store) persist(changes ...change) error {
	entries := make(map[string][]byte, len(changes))
	for _, c := range changes {
		data, err := json.Marshal(c.items)
		if err != nil {
			return &PersistenceError{Key: c.key, Err: err}
		}
		entries[c.key] = data
	}

	if len(changes) == 1 {
		c := changes[0]
		if err := s.adapter.Save(c.key, entries[c.key]); err != nil {
			log.Printf("ERROR: failed to save %s: %v", c.key, err)
			return &PersistenceError{Key: c.key, Err: err}
		}
		return nil
	}

	keys := make([]string, 0, len(changes))
	for _, c := range changes {
		keys = append(keys, c.key)
	}
	if err := s.adapter.SaveAll(entries); err != nil {
		log.Printf("ERROR: failed to save %v: %v", keys, err)
		return &PersistenceError{Key: strings.Join(keys, ","), Err: err}
	}
	return nil
}

// later は UpdatedAt が巻き戻らないように、prev と now の遅い方を返します。
func later(now, prev time.Time) time.Time {
	if now.Before(prev) {
		return prev
	}
	return now
}

func cloneOrEmpty[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

func indexProduct(products []model.Product, id string) int {
	return slices.IndexFunc(products, func(p model.Product) bool { return p.ID == id })
}

func indexCustomer(customers []model.Customer, id string) int {
	return slices.IndexFunc(customers, func(c model.Customer) bool { return c.ID == id })
}
