package obs

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestDomainMetrics(t *testing.T) {
	MustRegisterDomainMetrics("storefront_test", prometheus.NewRegistry())

	before := testutil.ToFloat64(CheckoutTotal.WithLabelValues("success"))
	ObserveCheckout("success")
	require.Equal(t, before+1, testutil.ToFloat64(CheckoutTotal.WithLabelValues("success")))

	conflicts := testutil.ToFloat64(InventoryConflictsTotal)
	ObserveInventoryConflict()
	require.Equal(t, conflicts+1, testutil.ToFloat64(InventoryConflictsTotal))

	ObservePromotionRejection("expired")
	require.GreaterOrEqual(t, testutil.ToFloat64(PromotionRejectionsTotal.WithLabelValues("expired")), float64(1))
}

func TestQueryName(t *testing.T) {
	name, op := queryName("-- name: DecrementProductInventory :execrows\nUPDATE products SET x = 1")
	require.Equal(t, "DecrementProductInventory", name)
	require.Equal(t, "UPDATE", op)

	name, op = queryName("select 1")
	require.Equal(t, "select", name)
	require.Equal(t, "SELECT", op)
}
