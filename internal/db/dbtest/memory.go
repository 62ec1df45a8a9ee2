// Package dbtest provides an in-memory implementation of the generated
// querier with transaction semantics for service level tests.
package dbtest

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
)

type key = [16]byte

// Memory holds every table in process memory. Transactions are serialised
// and operate on a copy that only replaces the live state on commit.
type Memory struct {
	mu    sync.Mutex
	state *state
	fail  map[string]error
	Now   func() time.Time
}

// New returns an empty in-memory database.
func New() *Memory {
	return &Memory{state: newState(), fail: map[string]error{}}
}

// FailOn makes the named query return err until cleared with a nil error.
func (m *Memory) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.fail, method)
		return
	}
	m.fail[method] = err
}

// WithinTx runs fn against a private copy of the state and publishes it when fn succeeds.
func (m *Memory) WithinTx(ctx context.Context, fn func(q dbgen.Querier) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	working := m.state.clone()
	if err := fn(&view{m: m, st: working}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m.state = working
	return nil
}

func (m *Memory) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Querier returns a querier that runs every call as its own statement against the live state.
func (m *Memory) Querier() dbgen.Querier {
	return &view{m: m, direct: true}
}

type state struct {
	stores     map[key]dbgen.Store
	domains    map[string]key
	plans      map[key]string
	products   map[key]dbgen.Product
	promotions map[key]dbgen.Promotion
	orders     map[key]dbgen.Order
	orderItems []dbgen.OrderItem
	movements  []dbgen.InventoryMovement
	audit      []dbgen.AuditEvent
	events     []dbgen.DomainEvent
}

func newState() *state {
	return &state{
		stores:     map[key]dbgen.Store{},
		domains:    map[string]key{},
		plans:      map[key]string{},
		products:   map[key]dbgen.Product{},
		promotions: map[key]dbgen.Promotion{},
		orders:     map[key]dbgen.Order{},
	}
}

func (s *state) clone() *state {
	out := newState()
	for k, v := range s.stores {
		out.stores[k] = v
	}
	for k, v := range s.domains {
		out.domains[k] = v
	}
	for k, v := range s.plans {
		out.plans[k] = v
	}
	for k, v := range s.products {
		out.products[k] = v
	}
	for k, v := range s.promotions {
		out.promotions[k] = v
	}
	for k, v := range s.orders {
		out.orders[k] = v
	}
	out.orderItems = append([]dbgen.OrderItem(nil), s.orderItems...)
	out.movements = append([]dbgen.InventoryMovement(nil), s.movements...)
	out.audit = append([]dbgen.AuditEvent(nil), s.audit...)
	out.events = append([]dbgen.DomainEvent(nil), s.events...)
	return out
}

func newID() pgtype.UUID {
	return pgtype.UUID{Bytes: uuid.New(), Valid: true}
}

func (m *Memory) ts() pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: m.now(), Valid: true}
}

// Seeding helpers.

// AddStore inserts a store with the given slug and status.
func (m *Memory) AddStore(slug, status string) dbgen.Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := dbgen.Store{ID: newID(), Slug: slug, Name: slug, Status: status, Currency: "USD", CreatedAt: m.ts(), UpdatedAt: m.ts()}
	m.state.stores[st.ID.Bytes] = st
	return st
}

// AddDomain maps a custom domain onto a store.
func (m *Memory) AddDomain(storeID pgtype.UUID, domain string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.domains[strings.ToLower(domain)] = storeID.Bytes
}

// SetPlan records an active subscription plan for a store.
func (m *Memory) SetPlan(storeID pgtype.UUID, plan string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.plans[storeID.Bytes] = plan
}

// AddProduct inserts a product for a store.
func (m *Memory) AddProduct(storeID pgtype.UUID, title string, priceCents int64, qty int32, status string) dbgen.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := dbgen.Product{
		ID:           newID(),
		StoreID:      storeID,
		Title:        title,
		PriceCents:   priceCents,
		InventoryQty: qty,
		Status:       status,
		CreatedAt:    m.ts(),
		UpdatedAt:    m.ts(),
	}
	m.state.products[p.ID.Bytes] = p
	return p
}

// AddPromotion inserts a promotion as-is, filling id and timestamps when missing.
func (m *Memory) AddPromotion(p dbgen.Promotion) dbgen.Promotion {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !p.ID.Valid {
		p.ID = newID()
	}
	p.Code = strings.ToUpper(p.Code)
	p.CreatedAt = m.ts()
	p.UpdatedAt = p.CreatedAt
	m.state.promotions[p.ID.Bytes] = p
	return p
}

// Product returns the current row for id.
func (m *Memory) Product(id pgtype.UUID) dbgen.Product {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.products[id.Bytes]
}

// Promotion returns the current row for id.
func (m *Memory) Promotion(id pgtype.UUID) dbgen.Promotion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.promotions[id.Bytes]
}

// Orders returns every persisted order.
func (m *Memory) Orders() []dbgen.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]dbgen.Order, 0, len(m.state.orders))
	for _, o := range m.state.orders {
		out = append(out, o)
	}
	return out
}

// OrderItems returns every persisted order item.
func (m *Memory) OrderItems() []dbgen.OrderItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dbgen.OrderItem(nil), m.state.orderItems...)
}

// Movements returns the inventory ledger in insertion order.
func (m *Memory) Movements() []dbgen.InventoryMovement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dbgen.InventoryMovement(nil), m.state.movements...)
}

// AuditEvents returns recorded audit rows in insertion order.
func (m *Memory) AuditEvents() []dbgen.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dbgen.AuditEvent(nil), m.state.audit...)
}

// DomainEvents returns recorded domain events in insertion order.
func (m *Memory) DomainEvents() []dbgen.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dbgen.DomainEvent(nil), m.state.events...)
}

// view executes queries against one state snapshot. Transaction views run
// while WithinTx holds m.mu; direct views lock per call.
type view struct {
	m      *Memory
	st     *state
	direct bool
}

func (v *view) enter() func() {
	if !v.direct {
		return func() {}
	}
	v.m.mu.Lock()
	return v.m.mu.Unlock
}

func (v *view) s() *state {
	if v.direct {
		return v.m.state
	}
	return v.st
}

func (v *view) failed(method string) error {
	return v.m.fail[method]
}

var errUnique = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

func (v *view) AdjustProductInventory(_ context.Context, arg dbgen.AdjustProductInventoryParams) (dbgen.Product, error) {
	defer v.enter()()
	if err := v.failed("AdjustProductInventory"); err != nil {
		return dbgen.Product{}, err
	}
	p, ok := v.s().products[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID || p.InventoryQty != arg.ExpectedQty || p.InventoryQty+arg.Delta < 0 {
		return dbgen.Product{}, pgx.ErrNoRows
	}
	p.InventoryQty += arg.Delta
	p.UpdatedAt = v.m.ts()
	v.s().products[p.ID.Bytes] = p
	return p, nil
}

func (v *view) CreateOrder(_ context.Context, arg dbgen.CreateOrderParams) (dbgen.Order, error) {
	defer v.enter()()
	if err := v.failed("CreateOrder"); err != nil {
		return dbgen.Order{}, err
	}
	o := dbgen.Order{
		ID:                newID(),
		StoreID:           arg.StoreID,
		CustomerEmail:     arg.CustomerEmail,
		Currency:          arg.Currency,
		SubtotalCents:     arg.SubtotalCents,
		DiscountCents:     arg.DiscountCents,
		TotalCents:        arg.TotalCents,
		Status:            arg.Status,
		FulfillmentStatus: "unfulfilled",
		PlatformFeeBps:    arg.PlatformFeeBps,
		PlatformFeeCents:  arg.PlatformFeeCents,
		PromoCode:         arg.PromoCode,
		PaymentReference:  arg.PaymentReference,
		CreatedAt:         v.m.ts(),
		UpdatedAt:         v.m.ts(),
	}
	v.s().orders[o.ID.Bytes] = o
	return o, nil
}

func (v *view) CreateOrderItem(_ context.Context, arg dbgen.CreateOrderItemParams) error {
	defer v.enter()()
	if err := v.failed("CreateOrderItem"); err != nil {
		return err
	}
	v.s().orderItems = append(v.s().orderItems, dbgen.OrderItem{
		ID:             newID(),
		OrderID:        arg.OrderID,
		StoreID:        arg.StoreID,
		ProductID:      arg.ProductID,
		Quantity:       arg.Quantity,
		UnitPriceCents: arg.UnitPriceCents,
		CreatedAt:      v.m.ts(),
	})
	return nil
}

func (v *view) CreatePromotion(_ context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error) {
	defer v.enter()()
	if err := v.failed("CreatePromotion"); err != nil {
		return dbgen.Promotion{}, err
	}
	code := strings.ToUpper(arg.Upper)
	for _, existing := range v.s().promotions {
		if existing.StoreID == arg.StoreID && existing.Code == code {
			return dbgen.Promotion{}, errUnique
		}
	}
	p := dbgen.Promotion{
		ID:               newID(),
		StoreID:          arg.StoreID,
		Code:             code,
		DiscountType:     arg.DiscountType,
		DiscountValue:    arg.DiscountValue,
		MinSubtotalCents: arg.MinSubtotalCents,
		MaxRedemptions:   arg.MaxRedemptions,
		StartsAt:         arg.StartsAt,
		EndsAt:           arg.EndsAt,
		IsActive:         arg.IsActive,
		CreatedAt:        v.m.ts(),
		UpdatedAt:        v.m.ts(),
	}
	v.s().promotions[p.ID.Bytes] = p
	return p, nil
}

func (v *view) DecrementProductInventory(_ context.Context, arg dbgen.DecrementProductInventoryParams) (int64, error) {
	defer v.enter()()
	if err := v.failed("DecrementProductInventory"); err != nil {
		return 0, err
	}
	p, ok := v.s().products[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID || p.InventoryQty != arg.ExpectedQty || p.InventoryQty < arg.Qty {
		return 0, nil
	}
	p.InventoryQty -= arg.Qty
	p.UpdatedAt = v.m.ts()
	v.s().products[p.ID.Bytes] = p
	return 1, nil
}

func (v *view) DeletePromotion(_ context.Context, arg dbgen.DeletePromotionParams) (int64, error) {
	defer v.enter()()
	if err := v.failed("DeletePromotion"); err != nil {
		return 0, err
	}
	p, ok := v.s().promotions[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID {
		return 0, nil
	}
	delete(v.s().promotions, arg.ID.Bytes)
	return 1, nil
}

func (v *view) GetActiveStoreByDomain(_ context.Context, domain string) (dbgen.Store, error) {
	defer v.enter()()
	if err := v.failed("GetActiveStoreByDomain"); err != nil {
		return dbgen.Store{}, err
	}
	id, ok := v.s().domains[strings.ToLower(domain)]
	if !ok {
		return dbgen.Store{}, pgx.ErrNoRows
	}
	st, ok := v.s().stores[id]
	if !ok || st.Status != "active" {
		return dbgen.Store{}, pgx.ErrNoRows
	}
	return st, nil
}

func (v *view) GetActiveStoreBySlug(_ context.Context, slug string) (dbgen.Store, error) {
	defer v.enter()()
	if err := v.failed("GetActiveStoreBySlug"); err != nil {
		return dbgen.Store{}, err
	}
	for _, st := range v.s().stores {
		if st.Slug == slug && st.Status == "active" {
			return st, nil
		}
	}
	return dbgen.Store{}, pgx.ErrNoRows
}

func (v *view) GetActiveSubscriptionPlan(_ context.Context, storeID pgtype.UUID) (string, error) {
	defer v.enter()()
	if err := v.failed("GetActiveSubscriptionPlan"); err != nil {
		return "", err
	}
	plan, ok := v.s().plans[storeID.Bytes]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return plan, nil
}

func (v *view) GetOrderByStore(_ context.Context, arg dbgen.GetOrderByStoreParams) (dbgen.Order, error) {
	defer v.enter()()
	if err := v.failed("GetOrderByStore"); err != nil {
		return dbgen.Order{}, err
	}
	o, ok := v.s().orders[arg.ID.Bytes]
	if !ok || o.StoreID != arg.StoreID {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (v *view) GetProductInventory(_ context.Context, arg dbgen.GetProductInventoryParams) (dbgen.GetProductInventoryRow, error) {
	defer v.enter()()
	if err := v.failed("GetProductInventory"); err != nil {
		return dbgen.GetProductInventoryRow{}, err
	}
	p, ok := v.s().products[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID {
		return dbgen.GetProductInventoryRow{}, pgx.ErrNoRows
	}
	return dbgen.GetProductInventoryRow{ID: p.ID, Title: p.Title, InventoryQty: p.InventoryQty, Status: p.Status}, nil
}

func (v *view) GetPromotionByCode(_ context.Context, arg dbgen.GetPromotionByCodeParams) (dbgen.Promotion, error) {
	defer v.enter()()
	if err := v.failed("GetPromotionByCode"); err != nil {
		return dbgen.Promotion{}, err
	}
	code := strings.ToUpper(arg.Upper)
	for _, p := range v.s().promotions {
		if p.StoreID == arg.StoreID && p.Code == code {
			return p, nil
		}
	}
	return dbgen.Promotion{}, pgx.ErrNoRows
}

func (v *view) GetStoreByID(_ context.Context, id pgtype.UUID) (dbgen.Store, error) {
	defer v.enter()()
	if err := v.failed("GetStoreByID"); err != nil {
		return dbgen.Store{}, err
	}
	st, ok := v.s().stores[id.Bytes]
	if !ok {
		return dbgen.Store{}, pgx.ErrNoRows
	}
	return st, nil
}

func (v *view) InsertAuditEvent(_ context.Context, arg dbgen.InsertAuditEventParams) error {
	defer v.enter()()
	if err := v.failed("InsertAuditEvent"); err != nil {
		return err
	}
	v.s().audit = append(v.s().audit, dbgen.AuditEvent{
		ID:          newID(),
		StoreID:     arg.StoreID,
		ActorUserID: arg.ActorUserID,
		Action:      arg.Action,
		Entity:      arg.Entity,
		EntityID:    arg.EntityID,
		Metadata:    arg.Metadata,
		CreatedAt:   v.m.ts(),
	})
	return nil
}

func (v *view) InsertDomainEvent(_ context.Context, arg dbgen.InsertDomainEventParams) (dbgen.DomainEvent, error) {
	defer v.enter()()
	if err := v.failed("InsertDomainEvent"); err != nil {
		return dbgen.DomainEvent{}, err
	}
	ev := dbgen.DomainEvent{
		ID:          newID(),
		StoreID:     arg.StoreID,
		Topic:       arg.Topic,
		AggregateID: arg.AggregateID,
		Payload:     arg.Payload,
		OccurredAt:  v.m.ts(),
	}
	v.s().events = append(v.s().events, ev)
	return ev, nil
}

func (v *view) InsertInventoryMovement(_ context.Context, arg dbgen.InsertInventoryMovementParams) (dbgen.InventoryMovement, error) {
	defer v.enter()()
	if err := v.failed("InsertInventoryMovement"); err != nil {
		return dbgen.InventoryMovement{}, err
	}
	mv := dbgen.InventoryMovement{
		ID:        newID(),
		StoreID:   arg.StoreID,
		ProductID: arg.ProductID,
		OrderID:   arg.OrderID,
		DeltaQty:  arg.DeltaQty,
		Reason:    arg.Reason,
		Note:      arg.Note,
		CreatedAt: v.m.ts(),
	}
	v.s().movements = append(v.s().movements, mv)
	return mv, nil
}

func (v *view) ListActiveProductsByIDs(_ context.Context, arg dbgen.ListActiveProductsByIDsParams) ([]dbgen.ListActiveProductsByIDsRow, error) {
	defer v.enter()()
	if err := v.failed("ListActiveProductsByIDs"); err != nil {
		return nil, err
	}
	var rows []dbgen.ListActiveProductsByIDsRow
	for _, id := range arg.Ids {
		p, ok := v.s().products[id.Bytes]
		if !ok || p.StoreID != arg.StoreID || p.Status != "active" {
			continue
		}
		rows = append(rows, dbgen.ListActiveProductsByIDsRow{ID: p.ID, Title: p.Title, PriceCents: p.PriceCents, InventoryQty: p.InventoryQty})
	}
	sort.Slice(rows, func(i, j int) bool {
		return bytes.Compare(rows[i].ID.Bytes[:], rows[j].ID.Bytes[:]) < 0
	})
	return rows, nil
}

func (v *view) ListAuditEvents(_ context.Context, arg dbgen.ListAuditEventsParams) ([]dbgen.AuditEvent, error) {
	defer v.enter()()
	if err := v.failed("ListAuditEvents"); err != nil {
		return nil, err
	}
	var rows []dbgen.AuditEvent
	for i := len(v.s().audit) - 1; i >= 0; i-- {
		if v.s().audit[i].StoreID == arg.StoreID {
			rows = append(rows, v.s().audit[i])
		}
	}
	return page(rows, arg.Limit, arg.Offset), nil
}

func (v *view) ListInventoryMovements(_ context.Context, arg dbgen.ListInventoryMovementsParams) ([]dbgen.ListInventoryMovementsRow, error) {
	defer v.enter()()
	if err := v.failed("ListInventoryMovements"); err != nil {
		return nil, err
	}
	var rows []dbgen.ListInventoryMovementsRow
	for i := len(v.s().movements) - 1; i >= 0; i-- {
		mv := v.s().movements[i]
		if mv.StoreID != arg.StoreID {
			continue
		}
		rows = append(rows, dbgen.ListInventoryMovementsRow{
			ID:           mv.ID,
			ProductID:    mv.ProductID,
			ProductTitle: v.s().products[mv.ProductID.Bytes].Title,
			OrderID:      mv.OrderID,
			DeltaQty:     mv.DeltaQty,
			Reason:       mv.Reason,
			Note:         mv.Note,
			CreatedAt:    mv.CreatedAt,
		})
	}
	return page(rows, arg.Limit, 0), nil
}

func (v *view) ListOrderItemsByOrder(_ context.Context, arg dbgen.ListOrderItemsByOrderParams) ([]dbgen.ListOrderItemsByOrderRow, error) {
	defer v.enter()()
	if err := v.failed("ListOrderItemsByOrder"); err != nil {
		return nil, err
	}
	var rows []dbgen.ListOrderItemsByOrderRow
	for _, it := range v.s().orderItems {
		if it.OrderID != arg.OrderID || it.StoreID != arg.StoreID {
			continue
		}
		rows = append(rows, dbgen.ListOrderItemsByOrderRow{
			ID:             it.ID,
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
			Title:          v.s().products[it.ProductID.Bytes].Title,
		})
	}
	return rows, nil
}

func (v *view) ListOrdersByStore(_ context.Context, arg dbgen.ListOrdersByStoreParams) ([]dbgen.Order, error) {
	defer v.enter()()
	if err := v.failed("ListOrdersByStore"); err != nil {
		return nil, err
	}
	var rows []dbgen.Order
	for _, o := range v.s().orders {
		if o.StoreID == arg.StoreID {
			rows = append(rows, o)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.Time.After(rows[j].CreatedAt.Time)
	})
	return page(rows, arg.Limit, arg.Offset), nil
}

func (v *view) ListPromotions(_ context.Context, storeID pgtype.UUID) ([]dbgen.Promotion, error) {
	defer v.enter()()
	if err := v.failed("ListPromotions"); err != nil {
		return nil, err
	}
	var rows []dbgen.Promotion
	for _, p := range v.s().promotions {
		if p.StoreID == storeID {
			rows = append(rows, p)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Code < rows[j].Code
	})
	return rows, nil
}

func (v *view) ListStorefrontProducts(_ context.Context, storeID pgtype.UUID) ([]dbgen.ListStorefrontProductsRow, error) {
	defer v.enter()()
	if err := v.failed("ListStorefrontProducts"); err != nil {
		return nil, err
	}
	var rows []dbgen.ListStorefrontProductsRow
	for _, p := range v.s().products {
		if p.StoreID != storeID || p.Status != "active" {
			continue
		}
		rows = append(rows, dbgen.ListStorefrontProductsRow{
			ID:           p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Sku:          p.Sku,
			ImageUrl:     p.ImageUrl,
			PriceCents:   p.PriceCents,
			InventoryQty: p.InventoryQty,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Title < rows[j].Title
	})
	return rows, nil
}

func (v *view) RedeemPromotion(_ context.Context, arg dbgen.RedeemPromotionParams) (int64, error) {
	defer v.enter()()
	if err := v.failed("RedeemPromotion"); err != nil {
		return 0, err
	}
	p, ok := v.s().promotions[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID || !p.IsActive {
		return 0, nil
	}
	if p.MaxRedemptions.Valid && (p.TimesRedeemed != arg.SeenRedeemed || p.TimesRedeemed >= p.MaxRedemptions.Int32) {
		return 0, nil
	}
	p.TimesRedeemed++
	p.UpdatedAt = v.m.ts()
	v.s().promotions[p.ID.Bytes] = p
	return 1, nil
}

func (v *view) UpdateOrderStatus(_ context.Context, arg dbgen.UpdateOrderStatusParams) (dbgen.Order, error) {
	defer v.enter()()
	if err := v.failed("UpdateOrderStatus"); err != nil {
		return dbgen.Order{}, err
	}
	o, ok := v.s().orders[arg.ID.Bytes]
	if !ok || o.StoreID != arg.StoreID {
		return dbgen.Order{}, pgx.ErrNoRows
	}
	if arg.Status.Valid {
		o.Status = arg.Status.String
	}
	if arg.FulfillmentStatus.Valid {
		o.FulfillmentStatus = arg.FulfillmentStatus.String
	}
	o.UpdatedAt = v.m.ts()
	v.s().orders[o.ID.Bytes] = o
	return o, nil
}

func (v *view) UpdatePromotion(_ context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error) {
	defer v.enter()()
	if err := v.failed("UpdatePromotion"); err != nil {
		return dbgen.Promotion{}, err
	}
	p, ok := v.s().promotions[arg.ID.Bytes]
	if !ok || p.StoreID != arg.StoreID {
		return dbgen.Promotion{}, pgx.ErrNoRows
	}
	p.DiscountType = arg.DiscountType
	p.DiscountValue = arg.DiscountValue
	p.MinSubtotalCents = arg.MinSubtotalCents
	p.MaxRedemptions = arg.MaxRedemptions
	p.StartsAt = arg.StartsAt
	p.EndsAt = arg.EndsAt
	p.IsActive = arg.IsActive
	p.UpdatedAt = v.m.ts()
	v.s().promotions[p.ID.Bytes] = p
	return p, nil
}

func page[T any](rows []T, limit, offset int32) []T {
	if offset > 0 {
		if int(offset) >= len(rows) {
			return nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && int(limit) < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

var _ dbgen.Querier = (*view)(nil)
