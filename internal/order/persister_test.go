package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/storefront-core/internal/catalog"
	"github.com/noah-isme/storefront-core/internal/db"
	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/db/dbtest"
	"github.com/noah-isme/storefront-core/internal/payment"
	"github.com/noah-isme/storefront-core/internal/pricing"
)

func seedOrder(t *testing.T, mem *dbtest.Memory) (dbgen.Store, dbgen.Order) {
	t.Helper()
	store := mem.AddStore("olive-shop", "active")
	soap := mem.AddProduct(store.ID, "Tallow Soap", 1800, 25, "active")
	snap, err := catalog.Reader{Q: mem.Querier()}.Load(context.Background(), "olive-shop",
		[]catalog.Item{{ProductID: db.UUIDString(soap.ID), Quantity: 2}})
	require.NoError(t, err)

	var created dbgen.Order
	err = mem.WithinTx(context.Background(), func(q dbgen.Querier) error {
		var err error
		created, err = Persister{}.Create(context.Background(), q, Input{
			Snapshot:      snap,
			CustomerEmail: " Buyer@Example.com ",
			Totals:        pricing.Assemble([]pricing.Line{{ProductID: db.UUIDString(soap.ID), Qty: 2, UnitPrice: 1800}}, 0, 200),
			Payment:       payment.Result{Kind: payment.KindStubbed, Reference: "stub_pi_abc", Mode: payment.ModeStub},
		})
		return err
	})
	require.NoError(t, err)
	return store, created
}

func TestPersisterCreate(t *testing.T) {
	mem := dbtest.New()
	store, o := seedOrder(t, mem)

	require.Equal(t, StatusPaid, o.Status)
	require.Equal(t, "buyer@example.com", o.CustomerEmail)
	require.Equal(t, "USD", o.Currency)
	require.EqualValues(t, 3600, o.SubtotalCents)
	require.EqualValues(t, 3600, o.TotalCents)
	require.EqualValues(t, 72, o.PlatformFeeCents)
	require.EqualValues(t, 200, o.PlatformFeeBps)
	require.False(t, o.PromoCode.Valid)
	require.Equal(t, store.ID, o.StoreID)

	items := mem.OrderItems()
	require.Len(t, items, 1)
	require.EqualValues(t, 2, items[0].Quantity)
	require.EqualValues(t, 1800, items[0].UnitPriceCents)
}

func TestPersisterFailureRollsBack(t *testing.T) {
	mem := dbtest.New()
	store := mem.AddStore("olive-shop", "active")
	soap := mem.AddProduct(store.ID, "Tallow Soap", 1800, 25, "active")
	snap, err := catalog.Reader{Q: mem.Querier()}.Load(context.Background(), "olive-shop",
		[]catalog.Item{{ProductID: db.UUIDString(soap.ID), Quantity: 1}})
	require.NoError(t, err)
	mem.FailOn("CreateOrderItem", errors.New("disk full"))

	err = mem.WithinTx(context.Background(), func(q dbgen.Querier) error {
		_, err := Persister{}.Create(context.Background(), q, Input{Snapshot: snap, Payment: payment.Result{Kind: payment.KindStubbed}})
		return err
	})
	require.Error(t, err)
	require.Empty(t, mem.Orders())
}
