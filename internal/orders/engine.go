package orders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/ollanpharmacy/pharmacy-api/internal/cart"
	"github.com/ollanpharmacy/pharmacy-api/internal/catalog"
	"github.com/ollanpharmacy/pharmacy-api/internal/users"
)

// Collaborator contracts consumed by the engine. The pgx/redis/kafka/websocket
// implementations live in their own packages; tests substitute in-memory fakes.

type OrderStore interface {
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListAdmin(ctx context.Context) ([]Order, error)
	ListByRider(ctx context.Context, riderID string) ([]Order, error)
}

type StockStore interface {
	Get(ctx context.Context, productID string) (catalog.Product, error)
	TryReserve(ctx context.Context, productID string, qty int) (bool, error)
	Restock(ctx context.Context, productID string, qty int) error
}

type CartStore interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
	Replace(ctx context.Context, userID string, items []cart.Item) error
	Delete(ctx context.Context, userID string) error
}

// Notifier is best-effort: implementations log failures and never surface
// them to the engine.
type Notifier interface {
	SendStatusUpdate(ctx context.Context, n NotificationRequest)
}

type Broadcaster interface {
	Publish(event string, payload any)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (bool, error)
}

type RiderDirectory interface {
	GetByID(ctx context.Context, id string) (users.User, error)
	ListRiders(ctx context.Context) ([]users.User, error)
}

type Engine struct {
	Orders   OrderStore
	Stock    StockStore
	Carts    CartStore
	Riders   RiderDirectory
	Payments PaymentVerifier
	Notifier Notifier
	Events   Broadcaster
	Cache    AdminCache
}

type CreateOrderInput struct {
	Customer        CustomerInfo
	DeliveryFee     int
	PrescriptionURL string
}

func (in *CreateOrderInput) validate() error {
	c := in.Customer
	if c.Name == "" || c.Email == "" || c.Phone == "" ||
		c.DeliveryOption == "" || c.PickupLocation == "" || c.EstimatedDelivery == "" {
		return ErrMissingFields
	}
	return nil
}

// CreateOrder converts the user's cart into an order: validates the cart,
// reserves stock per item, checks the delivery fee, snapshots line items and
// deletes the cart. Stock already reserved is not released when a later item
// fails; the failed call reports the first short product and stops.
func (e *Engine) CreateOrder(ctx context.Context, user users.User, in CreateOrderInput) (*Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	c, err := e.Carts.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Drop lines whose product vanished or carries a non-positive price, and
	// persist the healed cart before going any further.
	type pricedItem struct {
		item    cart.Item
		product catalog.Product
	}
	valid := make([]pricedItem, 0, len(c.Items))
	kept := make([]cart.Item, 0, len(c.Items))
	for _, it := range c.Items {
		p, err := e.Stock.Get(ctx, it.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.Price <= 0 {
			continue
		}
		valid = append(valid, pricedItem{item: it, product: p})
		kept = append(kept, it)
	}
	if len(kept) != len(c.Items) {
		if err := e.Carts.Replace(ctx, user.ID, kept); err != nil {
			return nil, err
		}
	}
	if len(valid) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := 0
	items := make([]LineItem, 0, len(valid))
	for _, v := range valid {
		subtotal += v.product.Price * v.item.Quantity
		items = append(items, LineItem{
			ProductID: v.item.ProductID,
			Quantity:  v.item.Quantity,
			Price:     v.product.Price,
		})
	}

	// Reserve stock item by item. Earlier decrements stay applied when a later
	// item comes up short; reconciliation is manual.
	for _, v := range valid {
		ok, err := e.Stock.TryReserve(ctx, v.item.ProductID, v.item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, InsufficientStock(v.product.Name)
		}
	}

	if in.DeliveryFee != ExpectedDeliveryFee(subtotal, in.Customer.DeliveryOption) {
		return nil, ErrInvalidDeliveryFee
	}

	o := &Order{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		Items:            items,
		Customer:         in.Customer,
		DeliveryFee:      in.DeliveryFee,
		TotalAmount:      subtotal + in.DeliveryFee,
		PrescriptionURL:  in.PrescriptionURL,
		PaymentReference: newPaymentReference(),
		Status:           StatusPending,
		DeliveryStatus:   DeliveryPending,
	}
	if err := e.Orders.Insert(ctx, o); err != nil {
		return nil, err
	}
	if err := e.Carts.Delete(ctx, user.ID); err != nil {
		return nil, err
	}

	e.postCommit(
		e.invalidateHook(),
		e.broadcastHook(EventNewOrder, o),
		e.notifyHook(o, string(StatusPending), ""),
	)
	return o, nil
}

// VerifyPayment marks an order paid. With a reference it asks the external
// verifier and accepts the order in any status, mirroring the original
// gateway callback. Without one it is a manual admin confirmation, allowed
// only while the order is still pending.
func (e *Engine) VerifyPayment(ctx context.Context, actor users.User, orderID, reference, note string) (*Order, error) {
	o, err := e.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if reference != "" {
		ok, err := e.Payments.Verify(ctx, reference)
		if err != nil {
			log.Printf("payment verifier error for reference %s: %v", reference, err)
			return nil, ErrPaymentUnavailable
		}
		if !ok {
			return nil, ErrPaymentVerificationFailed
		}
		o.PaymentReference = reference
	} else {
		if actor.Role != users.RoleAdmin {
			return nil, ErrAdminOnly
		}
		if o.Status != StatusPending {
			return nil, ErrInvalidState
		}
		o.PaymentNote = note
	}

	if !CanTransition(o.Status, StatusProcessing) {
		return nil, ErrInvalidState
	}
	o.Status = StatusProcessing
	if err := e.Orders.Update(ctx, o); err != nil {
		return nil, err
	}

	e.postCommit(
		e.invalidateHook(),
		e.broadcastHook(EventPaymentVerified, o),
		e.notifyHook(o, string(StatusProcessing), ""),
	)
	return o, nil
}

// UpdateOrderStatus applies an admin accept/reject decision. Any current
// status may be overridden. Rejecting restocks every line item each time it
// runs, so a repeated reject restocks the same lines again.
func (e *Engine) UpdateOrderStatus(ctx context.Context, actor users.User, orderID, action string) (*Order, error) {
	var next Status
	switch action {
	case "accept":
		next = StatusAccepted
	case "reject":
		next = StatusRejected
	default:
		return nil, ErrInvalidAction
	}

	o, err := e.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role != users.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if !CanTransition(o.Status, next) {
		return nil, ErrInvalidState
	}

	note := ""
	if next == StatusRejected {
		note = "Please contact customer service for more information."
		for _, it := range o.Items {
			if err := e.Stock.Restock(ctx, it.ProductID, it.Quantity); err != nil {
				return nil, err
			}
		}
	}

	o.Status = next
	if err := e.Orders.Update(ctx, o); err != nil {
		return nil, err
	}

	e.postCommit(
		e.invalidateHook(),
		e.broadcastHook(EventStatusUpdate, o),
		e.notifyHook(o, string(next), note),
	)
	return o, nil
}

// AssignOrder attaches a rider to an order and denormalizes the rider's name
// onto it. There is no status precondition.
func (e *Engine) AssignOrder(ctx context.Context, actor users.User, orderID, riderID string) (*Order, error) {
	o, err := e.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role != users.RoleAdmin {
		return nil, ErrAdminOnly
	}

	if riderID != "" {
		rider, err := e.Riders.GetByID(ctx, riderID)
		if err != nil || rider.Role != users.RoleRider {
			return nil, ErrInvalidRider
		}
		o.RiderID = rider.ID
		o.RiderName = rider.Name
	}

	if err := e.Orders.Update(ctx, o); err != nil {
		return nil, err
	}

	e.postCommit(
		e.invalidateHook(),
		e.broadcastHook(EventOrderAssigned, o),
	)
	return o, nil
}

// UpdateDeliveryStatus advances the delivery axis. Only the assigned rider
// may call it; delivered is terminal. A rider may jump straight from pending
// to delivered.
func (e *Engine) UpdateDeliveryStatus(ctx context.Context, actor users.User, orderID string, next DeliveryStatus) (*Order, error) {
	if next != DeliveryEnRoute && next != DeliveryDelivered {
		return nil, ErrInvalidDeliveryStatus
	}

	o, err := e.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.RiderID == "" || o.RiderID != actor.ID {
		return nil, ErrNotAssignedRider
	}
	if !CanDeliveryTransition(o.DeliveryStatus, next) {
		return nil, ErrAlreadyDelivered
	}

	o.DeliveryStatus = next
	if err := e.Orders.Update(ctx, o); err != nil {
		return nil, err
	}

	e.postCommit(
		e.invalidateHook(),
		e.broadcastHook(EventDeliveryUpdate, o),
		e.notifyHook(o, string(next), ""),
	)
	return o, nil
}

func (e *Engine) GetUserOrders(ctx context.Context, email string) ([]Order, error) {
	if email == "" {
		return nil, ErrMissingFields
	}
	return e.Orders.ListByEmail(ctx, email)
}

func (e *Engine) GetAllOrders(ctx context.Context) ([]Order, error) {
	return e.Orders.ListAll(ctx)
}

// GetAdminOrders serves the admin dashboard list through the time-boxed
// cache; any mutating operation above invalidates it.
func (e *Engine) GetAdminOrders(ctx context.Context) ([]Order, error) {
	if e.Cache != nil {
		if list, ok := e.Cache.Get(ctx); ok {
			return list, nil
		}
	}
	list, err := e.Orders.ListAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if e.Cache != nil {
		e.Cache.Set(ctx, list)
	}
	return list, nil
}

func (e *Engine) GetRiderOrders(ctx context.Context, riderID string) ([]Order, error) {
	return e.Orders.ListByRider(ctx, riderID)
}

func (e *Engine) GetRiders(ctx context.Context) ([]users.User, error) {
	return e.Riders.ListRiders(ctx)
}

// postCommit runs side-effect hooks after a transition is durable. Every hook
// is isolated: a panic in one is logged and never reaches the others or the
// caller. All hooks are non-blocking (buffered producer inbox, buffered hub
// channels, redis DEL), so they run inline.
func (e *Engine) postCommit(hooks ...func()) {
	for _, h := range hooks {
		if h == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("post-commit hook panic: %v", r)
				}
			}()
			h()
		}()
	}
}

func (e *Engine) invalidateHook() func() {
	if e.Cache == nil {
		return nil
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		e.Cache.Invalidate(ctx)
	}
}

func (e *Engine) broadcastHook(event string, o *Order) func() {
	if e.Events == nil {
		return nil
	}
	return func() { e.Events.Publish(event, o) }
}

func (e *Engine) notifyHook(o *Order, status, note string) func() {
	if e.Notifier == nil {
		return nil
	}
	n := NotificationRequest{
		Email:    o.Customer.Email,
		Phone:    o.Customer.Phone,
		Name:     o.Customer.Name,
		OrderRef: ShortRef(o.ID),
		Status:   status,
		Note:     note,
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		e.Notifier.SendStatusUpdate(ctx, n)
	}
}

func newPaymentReference() string {
	return fmt.Sprintf("OLLAN_%d_%d", time.Now().UnixMilli(), rand.IntN(1000000))
}
