package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	dbgen "github.com/noah-isme/storefront-core/internal/db/gen"
	"github.com/noah-isme/storefront-core/internal/repo"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

type ordersStub struct {
	listParams   dbgen.ListOrdersByStoreParams
	getParams    dbgen.GetOrderByStoreParams
	updateParams dbgen.UpdateOrderStatusParams
	listCalled   int
}

func (o *ordersStub) ListOrdersByStore(ctx context.Context, arg dbgen.ListOrdersByStoreParams) ([]dbgen.Order, error) {
	o.listCalled++
	o.listParams = arg
	return []dbgen.Order{{CustomerEmail: "a@example.com"}}, nil
}

func (o *ordersStub) GetOrderByStore(ctx context.Context, arg dbgen.GetOrderByStoreParams) (dbgen.Order, error) {
	o.getParams = arg
	return dbgen.Order{ID: arg.ID, StoreID: arg.StoreID}, nil
}

func (o *ordersStub) ListOrderItemsByOrder(ctx context.Context, arg dbgen.ListOrderItemsByOrderParams) ([]dbgen.ListOrderItemsByOrderRow, error) {
	return []dbgen.ListOrderItemsByOrderRow{{Quantity: 2}}, nil
}

func (o *ordersStub) UpdateOrderStatus(ctx context.Context, arg dbgen.UpdateOrderStatusParams) (dbgen.Order, error) {
	o.updateParams = arg
	return dbgen.Order{}, nil
}

func TestOrdersTenantRepoRequiresTenant(t *testing.T) {
	tenantRepo := repo.OrdersTenantRepo{Q: &ordersStub{}}
	if _, err := tenantRepo.List(context.Background(), 10, 0); !errors.Is(err, repo.ErrTenantMissing) {
		t.Fatalf("expected ErrTenantMissing, got %v", err)
	}
	ctx := tenant.With(context.Background(), "not-a-uuid")
	if _, _, err := tenantRepo.Get(ctx, uuid.NewString()); !errors.Is(err, repo.ErrTenantInvalid) {
		t.Fatalf("expected ErrTenantInvalid, got %v", err)
	}
}

func TestOrdersTenantRepoDelegates(t *testing.T) {
	stub := &ordersStub{}
	tenantRepo := repo.OrdersTenantRepo{Q: stub}
	storeID := uuid.New()
	ctx := tenant.With(context.Background(), storeID.String())

	rows, err := tenantRepo.List(ctx, 15, 5)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if stub.listCalled != 1 || len(rows) != 1 {
		t.Fatalf("unexpected list result: %+v", rows)
	}
	if stub.listParams.StoreID.Bytes != storeID {
		t.Fatalf("store mismatch in list: %v", stub.listParams.StoreID)
	}
	if stub.listParams.Limit != 15 || stub.listParams.Offset != 5 {
		t.Fatalf("unexpected pagination params: %+v", stub.listParams)
	}

	orderID := uuid.New()
	order, items, err := tenantRepo.Get(ctx, orderID.String())
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if order.ID.Bytes != orderID || stub.getParams.StoreID.Bytes != storeID {
		t.Fatalf("unexpected get params: %+v", stub.getParams)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}

	shipped := "shipped"
	if _, err := tenantRepo.UpdateStatus(ctx, orderID.String(), nil, &shipped); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if stub.updateParams.Status.Valid {
		t.Fatalf("status should be left unchanged")
	}
	if !stub.updateParams.FulfillmentStatus.Valid || stub.updateParams.FulfillmentStatus.String != "shipped" {
		t.Fatalf("unexpected fulfillment param: %+v", stub.updateParams.FulfillmentStatus)
	}
}

type promotionsStub struct {
	rows        []dbgen.Promotion
	createStore pgtype.UUID
}

func (p *promotionsStub) ListPromotions(ctx context.Context, storeID pgtype.UUID) ([]dbgen.Promotion, error) {
	return p.rows, nil
}

func (p *promotionsStub) CreatePromotion(ctx context.Context, arg dbgen.CreatePromotionParams) (dbgen.Promotion, error) {
	p.createStore = arg.StoreID
	return dbgen.Promotion{StoreID: arg.StoreID, Code: arg.Upper}, nil
}

func (p *promotionsStub) UpdatePromotion(ctx context.Context, arg dbgen.UpdatePromotionParams) (dbgen.Promotion, error) {
	return dbgen.Promotion{}, nil
}

func (p *promotionsStub) DeletePromotion(ctx context.Context, arg dbgen.DeletePromotionParams) (int64, error) {
	return 0, nil
}

func TestPromotionsTenantRepoScopesWrites(t *testing.T) {
	storeID := uuid.New()
	other := pgtype.UUID{Bytes: uuid.New(), Valid: true}
	stub := &promotionsStub{}
	tenantRepo := repo.PromotionsTenantRepo{Q: stub}
	ctx := tenant.With(context.Background(), storeID.String())

	if _, err := tenantRepo.Create(ctx, dbgen.CreatePromotionParams{StoreID: other, Upper: "SAVE10"}); err != nil {
		t.Fatalf("create error: %v", err)
	}
	if stub.createStore.Bytes != storeID {
		t.Fatalf("create must use the store from context, got %v", stub.createStore)
	}

	if _, err := tenantRepo.Get(ctx, uuid.NewString()); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	deleted, err := tenantRepo.Delete(ctx, uuid.NewString())
	if err != nil || deleted {
		t.Fatalf("expected no delete, got %v %v", deleted, err)
	}
}
