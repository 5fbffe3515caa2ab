package orders_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ollanpharmacy/pharmacy-api/internal/cart"
	"github.com/ollanpharmacy/pharmacy-api/internal/catalog"
	"github.com/ollanpharmacy/pharmacy-api/internal/orders"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

// ---- in-memory fakes for the engine's collaborators ----

type memOrders struct {
	m              map[string]*orders.Order
	listAdminCalls int
}

func newMemOrders() *memOrders { return &memOrders{m: map[string]*orders.Order{}} }

func cloneOrder(o *orders.Order) *orders.Order {
	cp := *o
	cp.Items = append([]orders.LineItem(nil), o.Items...)
	return &cp
}

func (s *memOrders) Insert(_ context.Context, o *orders.Order) error {
	s.m[o.ID] = cloneOrder(o)
	return nil
}

func (s *memOrders) Get(_ context.Context, id string) (*orders.Order, error) {
	o, ok := s.m[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *memOrders) Update(_ context.Context, o *orders.Order) error {
	if _, ok := s.m[o.ID]; !ok {
		return orders.ErrOrderNotFound
	}
	s.m[o.ID] = cloneOrder(o)
	return nil
}

func (s *memOrders) ListByEmail(_ context.Context, email string) ([]orders.Order, error) {
	var out []orders.Order
	for _, o := range s.m {
		if o.Customer.Email == email {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (s *memOrders) ListAll(_ context.Context) ([]orders.Order, error) {
	var out []orders.Order
	for _, o := range s.m {
		out = append(out, *cloneOrder(o))
	}
	return out, nil
}

func (s *memOrders) ListAdmin(_ context.Context) ([]orders.Order, error) {
	s.listAdminCalls++
	var out []orders.Order
	for _, o := range s.m {
		if o.Status != orders.StatusPending {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

func (s *memOrders) ListByRider(_ context.Context, riderID string) ([]orders.Order, error) {
	var out []orders.Order
	for _, o := range s.m {
		if o.RiderID == riderID && o.Status == orders.StatusAccepted {
			out = append(out, *cloneOrder(o))
		}
	}
	return out, nil
}

type memStock struct {
	products map[string]catalog.Product
}

func (s *memStock) Get(_ context.Context, id string) (catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (s *memStock) TryReserve(_ context.Context, id string, qty int) (bool, error) {
	p, ok := s.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	s.products[id] = p
	return true, nil
}

func (s *memStock) Restock(_ context.Context, id string, qty int) error {
	p := s.products[id]
	p.Stock += qty
	s.products[id] = p
	return nil
}

type memCarts struct {
	m        map[string][]cart.Item
	replaced [][]cart.Item
}

func (s *memCarts) Get(_ context.Context, userID string) (*cart.Cart, error) {
	items, ok := s.m[userID]
	if !ok || len(items) == 0 {
		return nil, nil
	}
	return &cart.Cart{UserID: userID, Items: append([]cart.Item(nil), items...)}, nil
}

func (s *memCarts) Replace(_ context.Context, userID string, items []cart.Item) error {
	s.m[userID] = append([]cart.Item(nil), items...)
	s.replaced = append(s.replaced, items)
	return nil
}

func (s *memCarts) Delete(_ context.Context, userID string) error {
	delete(s.m, userID)
	return nil
}

type memNotifier struct {
	sent []orders.NotificationRequest
}

func (n *memNotifier) SendStatusUpdate(_ context.Context, req orders.NotificationRequest) {
	n.sent = append(n.sent, req)
}

type memBroadcaster struct {
	events []string
}

func (b *memBroadcaster) Publish(event string, _ any) {
	b.events = append(b.events, event)
}

type memVerifier struct {
	ok  bool
	err error
}

func (v *memVerifier) Verify(context.Context, string) (bool, error) { return v.ok, v.err }

type memRiders struct {
	m map[string]users.User
}

func (r *memRiders) GetByID(_ context.Context, id string) (users.User, error) {
	u, ok := r.m[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *memRiders) ListRiders(context.Context) ([]users.User, error) {
	var out []users.User
	for _, u := range r.m {
		if u.Role == users.RoleRider {
			out = append(out, u)
		}
	}
	return out, nil
}

type memCache struct {
	list          []orders.Order
	ok            bool
	invalidations int
}

func (c *memCache) Get(context.Context) ([]orders.Order, bool) { return c.list, c.ok }

func (c *memCache) Set(_ context.Context, list []orders.Order) {
	c.list, c.ok = list, true
}

func (c *memCache) Invalidate(context.Context) {
	c.list, c.ok = nil, false
	c.invalidations++
}

// ---- fixtures ----

type fixture struct {
	engine    *orders.Engine
	orders    *memOrders
	stock     *memStock
	carts     *memCarts
	notifier  *memNotifier
	broadcast *memBroadcaster
	verifier  *memVerifier
	riders    *memRiders
	cache     *memCache
}

func newFixture() *fixture {
	f := &fixture{
		orders:    newMemOrders(),
		stock:     &memStock{products: map[string]catalog.Product{}},
		carts:     &memCarts{m: map[string][]cart.Item{}},
		notifier:  &memNotifier{},
		broadcast: &memBroadcaster{},
		verifier:  &memVerifier{ok: true},
		riders:    &memRiders{m: map[string]users.User{}},
		cache:     &memCache{},
	}
	f.engine = &orders.Engine{
		Orders:   f.orders,
		Stock:    f.stock,
		Carts:    f.carts,
		Riders:   f.riders,
		Payments: f.verifier,
		Notifier: f.notifier,
		Events:   f.broadcast,
		Cache:    f.cache,
	}
	return f
}

var customer = users.User{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: users.RoleCustomer}
var admin = users.User{ID: "adm", Name: "Boss", Email: "boss@example.com", Role: users.RoleAdmin}

func customerInfo(option string) orders.CustomerInfo {
	return orders.CustomerInfo{
		Name:              "Ada",
		Email:             "ada@example.com",
		Phone:             "08012345678",
		DeliveryOption:    option,
		PickupLocation:    "Zik",
		EstimatedDelivery: "today 4-6pm",
	}
}

// ---- CreateOrder ----

func TestCreateOrder(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Paracetamol", Price: 1000, Stock: 5}
	f.carts.m["u1"] = []cart.Item{{ProductID: "pA", Quantity: 3}}

	o, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 500, // subtotal 3000 < 5000
	})
	require.NoError(t, err)

	assert.Equal(t, orders.StatusPending, o.Status)
	assert.Equal(t, orders.DeliveryPending, o.DeliveryStatus)
	assert.Equal(t, 3500, o.TotalAmount)
	assert.Equal(t, o.Subtotal()+o.DeliveryFee, o.TotalAmount)
	assert.True(t, strings.HasPrefix(o.PaymentReference, "OLLAN_"))
	require.Len(t, o.Items, 1)
	assert.Equal(t, 1000, o.Items[0].Price) // price snapshot

	assert.Equal(t, 2, f.stock.products["pA"].Stock)

	c, _ := f.carts.Get(context.Background(), "u1")
	assert.Nil(t, c, "cart must be deleted")

	assert.Equal(t, []string{orders.EventNewOrder}, f.broadcast.events)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "pending", f.notifier.sent[0].Status)
	assert.Equal(t, orders.ShortRef(o.ID), f.notifier.sent[0].OrderRef)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Paracetamol", Price: 1000, Stock: 2}
	f.carts.m["u1"] = []cart.Item{{ProductID: "pA", Quantity: 3}}

	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 500,
	})
	require.Error(t, err)
	var oe *orders.Error
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, "INSUFFICIENT_STOCK", oe.Code)
	assert.Contains(t, oe.Message, "Paracetamol")

	assert.Equal(t, 2, f.stock.products["pA"].Stock, "failed reservation leaves stock untouched")
	assert.Empty(t, f.orders.m, "order must not be created")
	c, _ := f.carts.Get(context.Background(), "u1")
	assert.NotNil(t, c, "cart must survive the failure")
	assert.Empty(t, f.broadcast.events)
	assert.Empty(t, f.notifier.sent)
}

func TestCreateOrderPartialDecrementNotRolledBack(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Alpha", Price: 500, Stock: 5}
	f.stock.products["pB"] = catalog.Product{ID: "pB", Name: "Beta", Price: 700, Stock: 2}
	f.carts.m["u1"] = []cart.Item{
		{ProductID: "pA", Quantity: 1},
		{ProductID: "pB", Quantity: 3},
	}

	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 500,
	})
	require.Error(t, err)

	// Reservation is per item and stops at the first shortfall: the earlier
	// decrement stays applied.
	assert.Equal(t, 4, f.stock.products["pA"].Stock)
	assert.Equal(t, 2, f.stock.products["pB"].Stock)
	assert.Empty(t, f.orders.m)
}

func TestCreateOrderSelfHealsCart(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Alpha", Price: 500, Stock: 5}
	f.stock.products["pFree"] = catalog.Product{ID: "pFree", Name: "Freebie", Price: 0, Stock: 5}
	f.carts.m["u1"] = []cart.Item{
		{ProductID: "ghost", Quantity: 2}, // product no longer exists
		{ProductID: "pFree", Quantity: 1}, // invalid price
		{ProductID: "pA", Quantity: 2},
	}

	o, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 500,
	})
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "pA", o.Items[0].ProductID)

	require.Len(t, f.carts.replaced, 1, "healed cart persisted before ordering")
	require.Len(t, f.carts.replaced[0], 1)
	assert.Equal(t, "pA", f.carts.replaced[0][0].ProductID)
}

func TestCreateOrderAllItemsInvalid(t *testing.T) {
	f := newFixture()
	f.carts.m["u1"] = []cart.Item{{ProductID: "ghost", Quantity: 1}}

	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 0,
	})
	assert.ErrorIs(t, err, orders.ErrEmptyCart)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newFixture()
	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 0,
	})
	assert.ErrorIs(t, err, orders.ErrEmptyCart)
}

func TestCreateOrderInvalidDeliveryFee(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Alpha", Price: 1000, Stock: 5}
	f.carts.m["u1"] = []cart.Item{{ProductID: "pA", Quantity: 3}}

	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    customerInfo(orders.DeliveryTimeframe),
		DeliveryFee: 0, // expected 500
	})
	assert.ErrorIs(t, err, orders.ErrInvalidDeliveryFee)
	assert.Empty(t, f.orders.m)
	c, _ := f.carts.Get(context.Background(), "u1")
	assert.NotNil(t, c)
}

func TestCreateOrderMissingFields(t *testing.T) {
	f := newFixture()
	info := customerInfo(orders.DeliveryTimeframe)
	info.Phone = ""
	_, err := f.engine.CreateOrder(context.Background(), customer, orders.CreateOrderInput{
		Customer:    info,
		DeliveryFee: 500,
	})
	assert.ErrorIs(t, err, orders.ErrMissingFields)
}

// ---- VerifyPayment ----

func seedOrder(f *fixture, o orders.Order) *orders.Order {
	if o.ID == "" {
		o.ID = "ord-000001"
	}
	if o.Status == "" {
		o.Status = orders.StatusPending
	}
	if o.DeliveryStatus == "" {
		o.DeliveryStatus = orders.DeliveryPending
	}
	if o.Customer.Email == "" {
		o.Customer = customerInfo(orders.DeliveryTimeframe)
	}
	if o.PaymentReference == "" {
		o.PaymentReference = "OLLAN_1_42"
	}
	f.orders.m[o.ID] = &o
	return f.orders.m[o.ID]
}

func TestVerifyPaymentExternal(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	o, err := f.engine.VerifyPayment(context.Background(), customer, "ord-000001", "PSK_REF_1", "")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusProcessing, o.Status)
	assert.Equal(t, "PSK_REF_1", o.PaymentReference)
	assert.Equal(t, []string{orders.EventPaymentVerified}, f.broadcast.events)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "processing", f.notifier.sent[0].Status)
}

func TestVerifyPaymentExternalFailure(t *testing.T) {
	f := newFixture()
	f.verifier.ok = false
	seedOrder(f, orders.Order{})

	_, err := f.engine.VerifyPayment(context.Background(), customer, "ord-000001", "PSK_REF_1", "")
	assert.ErrorIs(t, err, orders.ErrPaymentVerificationFailed)
	assert.Equal(t, orders.StatusPending, f.orders.m["ord-000001"].Status)
	assert.Empty(t, f.broadcast.events)
}

func TestVerifyPaymentManual(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	o, err := f.engine.VerifyPayment(context.Background(), admin, "ord-000001", "", "paid by transfer")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusProcessing, o.Status)
	assert.Equal(t, "paid by transfer", o.PaymentNote)
	assert.Equal(t, "OLLAN_1_42", o.PaymentReference, "synthesized reference kept")
}

func TestVerifyPaymentManualRequiresAdmin(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	_, err := f.engine.VerifyPayment(context.Background(), customer, "ord-000001", "", "")
	assert.ErrorIs(t, err, orders.ErrAdminOnly)
}

func TestVerifyPaymentManualRequiresPending(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusProcessing})

	_, err := f.engine.VerifyPayment(context.Background(), admin, "ord-000001", "", "")
	assert.ErrorIs(t, err, orders.ErrInvalidState)
}

func TestVerifyPaymentOrderNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.engine.VerifyPayment(context.Background(), admin, "nope", "ref", "")
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
}

// ---- UpdateOrderStatus ----

func TestUpdateOrderStatusAccept(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusProcessing})

	o, err := f.engine.UpdateOrderStatus(context.Background(), admin, "ord-000001", "accept")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusAccepted, o.Status)
	assert.Equal(t, []string{orders.EventStatusUpdate}, f.broadcast.events)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "accepted", f.notifier.sent[0].Status)
	assert.Empty(t, f.notifier.sent[0].Note)
}

func TestUpdateOrderStatusRejectRestocks(t *testing.T) {
	f := newFixture()
	f.stock.products["pA"] = catalog.Product{ID: "pA", Name: "Alpha", Price: 1000, Stock: 2}
	seedOrder(f, orders.Order{Items: []orders.LineItem{{ProductID: "pA", Quantity: 3, Price: 1000}}})

	o, err := f.engine.UpdateOrderStatus(context.Background(), admin, "ord-000001", "reject")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusRejected, o.Status)
	assert.Equal(t, 5, f.stock.products["pA"].Stock)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "Please contact customer service for more information.", f.notifier.sent[0].Note)

	// Rejecting again restocks the same lines again: actual behavior, kept
	// from the original system.
	_, err = f.engine.UpdateOrderStatus(context.Background(), admin, "ord-000001", "reject")
	require.NoError(t, err)
	assert.Equal(t, 8, f.stock.products["pA"].Stock)
}

func TestUpdateOrderStatusOverridesAnyState(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted})

	o, err := f.engine.UpdateOrderStatus(context.Background(), admin, "ord-000001", "reject")
	require.NoError(t, err)
	assert.Equal(t, orders.StatusRejected, o.Status)
}

func TestUpdateOrderStatusRequiresAdmin(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	_, err := f.engine.UpdateOrderStatus(context.Background(), customer, "ord-000001", "accept")
	assert.ErrorIs(t, err, orders.ErrAdminOnly)
}

func TestUpdateOrderStatusInvalidAction(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	_, err := f.engine.UpdateOrderStatus(context.Background(), admin, "ord-000001", "explode")
	assert.ErrorIs(t, err, orders.ErrInvalidAction)
}

// ---- AssignOrder ----

func TestAssignOrder(t *testing.T) {
	f := newFixture()
	f.riders.m["r1"] = users.User{ID: "r1", Name: "Dele", Role: users.RoleRider}
	seedOrder(f, orders.Order{Status: orders.StatusAccepted})

	o, err := f.engine.AssignOrder(context.Background(), admin, "ord-000001", "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", o.RiderID)
	assert.Equal(t, "Dele", o.RiderName)
	assert.Equal(t, []string{orders.EventOrderAssigned}, f.broadcast.events)
}

func TestAssignOrderInvalidRider(t *testing.T) {
	f := newFixture()
	f.riders.m["c1"] = users.User{ID: "c1", Name: "Notarider", Role: users.RoleCustomer}
	seedOrder(f, orders.Order{})

	_, err := f.engine.AssignOrder(context.Background(), admin, "ord-000001", "c1")
	assert.ErrorIs(t, err, orders.ErrInvalidRider)
	assert.Empty(t, f.orders.m["ord-000001"].RiderID, "order.rider unchanged")

	_, err = f.engine.AssignOrder(context.Background(), admin, "ord-000001", "unknown")
	assert.ErrorIs(t, err, orders.ErrInvalidRider)
}

func TestAssignOrderRequiresAdmin(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{})

	_, err := f.engine.AssignOrder(context.Background(), customer, "ord-000001", "r1")
	assert.ErrorIs(t, err, orders.ErrAdminOnly)
}

// ---- UpdateDeliveryStatus ----

var rider = users.User{ID: "r1", Name: "Dele", Role: users.RoleRider}

func TestUpdateDeliveryStatus(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted, RiderID: "r1", RiderName: "Dele"})

	o, err := f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", orders.DeliveryEnRoute)
	require.NoError(t, err)
	assert.Equal(t, orders.DeliveryEnRoute, o.DeliveryStatus)
	assert.Equal(t, []string{orders.EventDeliveryUpdate}, f.broadcast.events)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, "en_route", f.notifier.sent[0].Status)

	o, err = f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", orders.DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, orders.DeliveryDelivered, o.DeliveryStatus)
}

func TestUpdateDeliveryStatusJumpToDelivered(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted, RiderID: "r1"})

	o, err := f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", orders.DeliveryDelivered)
	require.NoError(t, err)
	assert.Equal(t, orders.DeliveryDelivered, o.DeliveryStatus)
}

func TestUpdateDeliveryStatusWrongRider(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted, RiderID: "someone-else"})

	for _, next := range []orders.DeliveryStatus{orders.DeliveryEnRoute, orders.DeliveryDelivered} {
		_, err := f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", next)
		assert.ErrorIs(t, err, orders.ErrNotAssignedRider)
	}
}

func TestUpdateDeliveryStatusDeliveredIsTerminal(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted, RiderID: "r1", DeliveryStatus: orders.DeliveryDelivered})

	for _, next := range []orders.DeliveryStatus{orders.DeliveryEnRoute, orders.DeliveryDelivered} {
		_, err := f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", next)
		assert.ErrorIs(t, err, orders.ErrAlreadyDelivered)
	}
}

func TestUpdateDeliveryStatusInvalidValue(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{Status: orders.StatusAccepted, RiderID: "r1"})

	_, err := f.engine.UpdateDeliveryStatus(context.Background(), rider, "ord-000001", "teleported")
	assert.ErrorIs(t, err, orders.ErrInvalidDeliveryStatus)
}

// ---- queries & cache ----

func TestGetAdminOrdersCache(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{ID: "o1", Status: orders.StatusProcessing})

	first, err := f.engine.GetAdminOrders(context.Background())
	require.NoError(t, err)
	second, err := f.engine.GetAdminOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.orders.listAdminCalls, "second call served from cache")

	// Any mutation invalidates; the next read reflects it.
	_, err = f.engine.UpdateOrderStatus(context.Background(), admin, "o1", "accept")
	require.NoError(t, err)

	third, err := f.engine.GetAdminOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, f.orders.listAdminCalls)
	require.Len(t, third, 1)
	assert.Equal(t, orders.StatusAccepted, third[0].Status)
}

func TestGetRiderOrdersFiltersAccepted(t *testing.T) {
	f := newFixture()
	seedOrder(f, orders.Order{ID: "o1", Status: orders.StatusAccepted, RiderID: "r1"})
	seedOrder(f, orders.Order{ID: "o2", Status: orders.StatusProcessing, RiderID: "r1"})
	seedOrder(f, orders.Order{ID: "o3", Status: orders.StatusAccepted, RiderID: "r2"})

	list, err := f.engine.GetRiderOrders(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o1", list[0].ID)
}

func TestGetUserOrdersRequiresEmail(t *testing.T) {
	f := newFixture()
	_, err := f.engine.GetUserOrders(context.Background(), "")
	assert.ErrorIs(t, err, orders.ErrMissingFields)
}
