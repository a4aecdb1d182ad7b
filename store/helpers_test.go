package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"retail/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errInjected = errors.New("injected failure")

// memAdapter はテスト用のメモリ上のアダプタです。
type memAdapter struct {
	mu       sync.Mutex
	data     map[string][]byte
	failSave bool
	failLoad map[string]bool
	saves    int
	// onLoad は Load の先頭で呼ばれます (nil なら何もしません)。
	onLoad func(key string)
}

func newMemAdapter() *memAdapter {
	return &memAdapter{data: map[string][]byte{}, failLoad: map[string]bool{}}
}

func (m *memAdapter) Load(key string) ([]byte, error) {
	if m.onLoad != nil {
		m.onLoad(key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failLoad[key] {
		return nil, errInjected
	}
	return m.data[key], nil
}

func (m *memAdapter) Save(key string, data []byte) error {
	return m.SaveAll(map[string][]byte{key: data})
}

func (m *memAdapter) SaveAll(entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errInjected
	}
	for k, v := range entries {
		m.data[k] = v
	}
	m.saves++
	return nil
}

func (m *memAdapter) Clear(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memAdapter) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

// stepClock は呼ばれるたびに1秒進む時計です。
type stepClock struct {
	mu  sync.Mutex
	cur time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

func testStore(t *testing.T) (*Store, *memAdapter) {
	t.Helper()
	adapter := newMemAdapter()
	clock := &stepClock{cur: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)}
	seq := 0
	st := New(adapter, WithClock(clock.Now), WithIDGenerator(func() string {
		seq++
		return fmt.Sprintf("id-%03d", seq)
	}))
	st.Load()
	return st, adapter
}

func mustProduct(t *testing.T, st *Store, name string, price string, stock int) model.Product {
	t.Helper()
	p, err := st.CreateProduct(model.NewProduct{
		Name:     name,
		Category: model.CategoryFreshFish,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	})
	require.NoError(t, err)
	return p
}
