package cart_test

import (
	"context"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/shopdesk/internal/cart"
	"github.com/aaravmahajanofficial/shopdesk/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, price string) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		ImageURL: "https://img/" + name + ".png",
	}
}

func newStore(kv cart.KV) *cart.Store {
	return cart.NewStore(kv, cart.NewNotifier(), cart.Options{})
}

func TestStoreAdd(t *testing.T) {
	ctx := t.Context()

	for _, n := range []int{1, 2, 5, 17} {
		store := newStore(cart.NewMemoryKV())
		p := product("mug", "4.99")

		var items []models.CartItem
		var err error

		for range n {
			items, err = store.Add(ctx, "owner-1", p)
			require.NoError(t, err)
		}

		require.Len(t, items, 1, "repeated adds keep a single entry")
		assert.Equal(t, n, items[0].Quantity)

		loaded, err := store.Load(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		assert.Equal(t, n, loaded[0].Quantity)
		assert.Equal(t, p.Name, loaded[0].Name)
		assert.True(t, p.Price.Equal(loaded[0].Price))
	}
}

func TestStoreSetQuantity(t *testing.T) {
	ctx := t.Context()
	store := newStore(cart.NewMemoryKV())
	p := product("lamp", "40.00")

	_, err := store.Add(ctx, "o", p)
	require.NoError(t, err)

	items, err := store.SetQuantity(ctx, "o", p.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)

	for _, q := range []int{0, -1, -100} {
		items, err = store.SetQuantity(ctx, "o", p.ID, q)
		require.NoError(t, err)
		require.Len(t, items, 1, "quantity below 1 never removes the entry")
		assert.Equal(t, 4, items[0].Quantity)
	}

	items, err = store.SetQuantity(ctx, "o", uuid.New(), 9)
	require.NoError(t, err)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestStoreRemoveAndClear(t *testing.T) {
	ctx := t.Context()
	store := newStore(cart.NewMemoryKV())
	a, b := product("a", "1.00"), product("b", "2.00")

	_, _ = store.Add(ctx, "o", a)
	_, _ = store.Add(ctx, "o", b)

	items, err := store.Remove(ctx, "o", a.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)

	require.NoError(t, store.Clear(ctx, "o"))

	items, err = store.Load(ctx, "o")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreOwnersAreIsolated(t *testing.T) {
	ctx := t.Context()
	store := newStore(cart.NewMemoryKV())

	_, _ = store.Add(ctx, "alice", product("a", "1.00"))

	items, err := store.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreLoadUnparseable(t *testing.T) {
	ctx := t.Context()
	kv := cart.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "cart:o", "{not json"))

	store := newStore(kv)

	items, err := store.Load(ctx, "o")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	// the next mutation overwrites the broken entry
	items, err = store.Add(ctx, "o", product("x", "3.00"))
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCalculateTotal(t *testing.T) {
	items := []models.CartItem{
		{ID: uuid.New(), Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{ID: uuid.New(), Price: decimal.RequireFromString("3.50"), Quantity: 1},
	}

	assert.Equal(t, "23.50", cart.CalculateTotal(items))
	assert.Equal(t, "0.00", cart.CalculateTotal(nil))
	assert.Equal(t, "0.30", cart.CalculateTotal([]models.CartItem{
		{Price: decimal.RequireFromString("0.10"), Quantity: 3},
	}))
	assert.Equal(t, "3.35", cart.CalculateTotal([]models.CartItem{
		{Price: decimal.RequireFromString("1.115"), Quantity: 3},
	}))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []models.CartItem{
		{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("12.50"), ImageURL: "u1", Quantity: 2},
		{ID: uuid.New(), Name: "Tea \"Earl\" Grey", Price: decimal.RequireFromString("0.99"), Quantity: 1},
	}

	raw, err := cart.Encode(items)
	require.NoError(t, err)

	decoded, err := cart.Decode(raw)
	require.NoError(t, err)
	require.Len(t, decoded, len(items))

	for i := range items {
		assert.Equal(t, items[i].ID, decoded[i].ID)
		assert.Equal(t, items[i].Name, decoded[i].Name)
		assert.Equal(t, items[i].ImageURL, decoded[i].ImageURL)
		assert.Equal(t, items[i].Quantity, decoded[i].Quantity)
		assert.True(t, items[i].Price.Equal(decoded[i].Price))
	}

	again, err := cart.Encode(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, raw, again)

	empty, err := cart.Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestMutationsPublishEvents(t *testing.T) {
	ctx := t.Context()
	notifier := cart.NewNotifier()
	store := cart.NewStore(cart.NewMemoryKV(), notifier, cart.Options{})

	events, unsubscribe := notifier.Subscribe("o")
	defer unsubscribe()

	p := product("a", "1.00")

	_, err := store.Add(ctx, "o", p)
	require.NoError(t, err)
	assert.Equal(t, cart.Event{Owner: "o"}, receive(t, events))

	// a no-op does not publish
	_, err = store.SetQuantity(ctx, "o", p.ID, 0)
	require.NoError(t, err)
	assertNoEvent(t, events)

	require.NoError(t, store.Clear(ctx, "o"))
	assert.Equal(t, cart.Event{Owner: "o"}, receive(t, events))
}

func TestSubscribeSeesChangesFromOtherReplicas(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	shared := cart.NewRedisKV(client, time.Hour)
	opts := cart.Options{KeyPrefix: "cart", PollInterval: 20 * time.Millisecond}

	replicaA := cart.NewStore(shared, cart.NewNotifier(), opts)
	replicaB := cart.NewStore(shared, cart.NewNotifier(), opts)

	ctx, cancel := context.WithCancel(t.Context())

	events := replicaA.Subscribe(ctx, "o")

	_, err := replicaB.Add(t.Context(), "o", product("a", "1.00"))
	require.NoError(t, err)

	assert.Equal(t, cart.Event{Owner: "o"}, receive(t, events))

	items, err := replicaA.Load(t.Context(), "o")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond, "channel closes when the subscriber goes away")
}

func TestRedisKV(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := t.Context()
	kv := cart.NewRedisKV(client, time.Minute)

	_, ok, err := kv.Get(ctx, "cart:x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "cart:x", "[]"))

	val, ok, err := kv.Get(ctx, "cart:x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", val)
	assert.Equal(t, time.Minute, mr.TTL("cart:x"))

	require.NoError(t, kv.Del(ctx, "cart:x"))
	assert.False(t, mr.Exists("cart:x"))
}

func receive(t *testing.T, ch <-chan cart.Event) cart.Event {
	t.Helper()

	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cart event")

		return cart.Event{}
	}
}

func assertNoEvent(t *testing.T, ch <-chan cart.Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}
