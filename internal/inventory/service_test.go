package inventory_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/audit"
	"github.com/noah-isme/storefront-core/internal/db"
	"github.com/noah-isme/storefront-core/internal/db/dbtest"
	"github.com/noah-isme/storefront-core/internal/events"
	"github.com/noah-isme/storefront-core/internal/inventory"
)

type auditSpy struct {
	entries []audit.Entry
}

func (a *auditSpy) Record(_ context.Context, e audit.Entry) {
	a.entries = append(a.entries, e)
}

type invalidations struct {
	stores []pgtype.UUID
}

func (i *invalidations) Invalidate(_ context.Context, storeID pgtype.UUID) {
	i.stores = append(i.stores, storeID)
}

func newService(mem *dbtest.Memory) (*inventory.Service, *auditSpy, *invalidations) {
	spy := &auditSpy{}
	inv := &invalidations{}
	return &inventory.Service{
		Tx:     mem,
		Bus:    &events.Bus{},
		Audit:  spy,
		Cache:  inv,
		Logger: zerolog.Nop(),
	}, spy, inv
}

func TestAdjustRestock(t *testing.T) {
	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	p := mem.AddProduct(store.ID, "Tallow Soap", 1800, 2, "active")
	svc, spy, inv := newService(mem)

	out, err := svc.Adjust(context.Background(), store.ID, inventory.AdjustInput{
		ProductID: db.UUIDString(p.ID), DeltaQty: 10, Reason: "restock", Note: " pallet 7 ",
	})
	require.NoError(t, err)
	require.EqualValues(t, 12, out.InventoryQty)

	mv := mem.Movements()
	require.Len(t, mv, 1)
	require.EqualValues(t, 10, mv[0].DeltaQty)
	require.Equal(t, inventory.ReasonRestock, mv[0].Reason)
	require.Equal(t, "pallet 7", mv[0].Note.String)
	require.False(t, mv[0].OrderID.Valid)

	require.Len(t, spy.entries, 1)
	require.Equal(t, "adjust", spy.entries[0].Action)
	require.Equal(t, "inventory", spy.entries[0].Entity)
	require.Equal(t, []pgtype.UUID{store.ID}, inv.stores)

	evs := mem.DomainEvents()
	require.Len(t, evs, 1)
	require.Equal(t, events.TopicInventoryAdjusted, evs[0].Topic)
}

func TestAdjustCannotGoNegative(t *testing.T) {
	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	p := mem.AddProduct(store.ID, "Tallow Soap", 1800, 2, "active")
	svc, spy, _ := newService(mem)

	_, err := svc.Adjust(context.Background(), store.ID, inventory.AdjustInput{
		ProductID: db.UUIDString(p.ID), DeltaQty: -3, Reason: "adjustment",
	})
	appErr := requireAppError(t, err, "NEGATIVE_INVENTORY", http.StatusBadRequest)
	require.Equal(t, "Inventory adjustment cannot make stock negative.", appErr.Message)
	require.EqualValues(t, 2, mem.Product(p.ID).InventoryQty)
	require.Empty(t, mem.Movements())
	require.Empty(t, spy.entries)

	out, err := svc.Adjust(context.Background(), store.ID, inventory.AdjustInput{
		ProductID: db.UUIDString(p.ID), DeltaQty: -2, Reason: "adjustment",
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, out.InventoryQty)
}

func TestAdjustProductOfAnotherStore(t *testing.T) {
	mem := dbtest.New()
	mine := mem.AddStore("olive-shop", "active")
	other := mem.AddStore("cedar-shop", "active")
	p := mem.AddProduct(other.ID, "Cedar Oil", 900, 5, "active")
	svc, _, _ := newService(mem)

	_, err := svc.Adjust(context.Background(), mine.ID, inventory.AdjustInput{
		ProductID: db.UUIDString(p.ID), DeltaQty: 1, Reason: "restock",
	})
	requireAppError(t, err, "PRODUCT_NOT_FOUND", http.StatusNotFound)
	require.EqualValues(t, 5, mem.Product(p.ID).InventoryQty)
}

func TestAdjustConcurrentModification(t *testing.T) {
	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	p := mem.AddProduct(store.ID, "Tallow Soap", 1800, 5, "active")
	mem.FailOn("AdjustProductInventory", pgx.ErrNoRows)
	svc, _, _ := newService(mem)

	_, err := svc.Adjust(context.Background(), store.ID, inventory.AdjustInput{
		ProductID: db.UUIDString(p.ID), DeltaQty: 1, Reason: "restock",
	})
	requireAppError(t, err, "INVENTORY_CONFLICT", http.StatusConflict)
	require.Empty(t, mem.Movements())
}

func TestAdjustValidatesInput(t *testing.T) {
	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	p := mem.AddProduct(store.ID, "Tallow Soap", 1800, 5, "active")
	svc, _, _ := newService(mem)
	id := db.UUIDString(p.ID)

	cases := []inventory.AdjustInput{
		{ProductID: "nope", DeltaQty: 1, Reason: "restock"},
		{ProductID: id, DeltaQty: 0, Reason: "restock"},
		{ProductID: id, DeltaQty: 1, Reason: "sale"},
		{ProductID: id, DeltaQty: 1, Reason: "restock", Note: strings.Repeat("x", 281)},
	}
	for _, in := range cases {
		_, err := svc.Adjust(context.Background(), store.ID, in)
		requireAppError(t, err, "VALIDATION_FAILED", http.StatusBadRequest)
	}
	require.EqualValues(t, 5, mem.Product(p.ID).InventoryQty)
}
