package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/noah-isme/storefront-core/internal/auth"
	"github.com/noah-isme/storefront-core/internal/billing"
	"github.com/noah-isme/storefront-core/internal/config"
	"github.com/noah-isme/storefront-core/internal/obs"
	"github.com/noah-isme/storefront-core/internal/tenant"
)

type seedProduct struct {
	Title string
	SKU   string
	Price int64
	Stock int32
	Image string
}

// seeder creates a demo store with products, a promotion and a growth plan,
// then prints a merchant token bound to that store.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeder: %v\n", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Obs.LogFormat, cfg.Obs.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	slug := tenant.NormalizeSlug(envOr("SEED_STORE_SLUG", "demo-outfitters"))
	if !tenant.ValidSlug(slug) {
		logger.Fatal().Str("slug", slug).Msg("invalid store slug")
	}

	var storeID string
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO stores (slug, name, status, currency)
			VALUES ($1, $2, 'active', $3)
			ON CONFLICT (slug) DO UPDATE SET status = 'active', updated_at = now()
			RETURNING id::text`, slug, "Demo Outfitters", cfg.CurrencyCode).Scan(&storeID); err != nil {
			return fmt.Errorf("upsert store: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO store_subscriptions (store_id, plan, status)
			VALUES ($1, $2, 'active')
			ON CONFLICT (store_id) DO UPDATE SET plan = EXCLUDED.plan, status = 'active', updated_at = now()`,
			storeID, string(billing.PlanGrowth)); err != nil {
			return fmt.Errorf("upsert subscription: %w", err)
		}
		return seedCatalog(ctx, tx, storeID, logger)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("seed")
	}

	tokens, err := auth.NewTokens(auth.Config{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      24 * time.Hour,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise tokens")
	}
	token, expires, err := tokens.Issue(auth.Claims{UserID: envOr("SEED_MERCHANT_ID", "00000000-0000-0000-0000-000000000001"), StoreID: storeID, Role: "owner"})
	if err != nil {
		logger.Fatal().Err(err).Msg("issue token")
	}

	logger.Info().Str("store_id", storeID).Str("slug", slug).Time("token_expires_at", expires).Msg("seed complete")
	fmt.Println(token)
}

func seedCatalog(ctx context.Context, tx pgx.Tx, storeID string, logger zerolog.Logger) error {
	products := []seedProduct{
		{"Canvas Tote", "TOTE-01", 1800, 25, "https://images.unsplash.com/photo-1544816155-12df9643f363?w=800"},
		{"Merino Beanie", "BEANIE-01", 2400, 40, ""},
		{"Trail Water Bottle", "BOTTLE-01", 1250, 60, ""},
		{"Waxed Field Jacket", "JACKET-01", 18900, 8, ""},
	}
	for _, p := range products {
		tag, err := tx.Exec(ctx, `
			INSERT INTO products (store_id, title, sku, image_url, price_cents, inventory_qty, status)
			SELECT $1::uuid, $2::text, $3::text, NULLIF($4::text, ''), $5::bigint, $6::int, 'active'
			WHERE NOT EXISTS (SELECT 1 FROM products WHERE store_id = $1::uuid AND sku = $3::text)`,
			storeID, p.Title, p.SKU, p.Image, p.Price, p.Stock)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.SKU, err)
		}
		logger.Debug().Str("sku", p.SKU).Int64("inserted", tag.RowsAffected()).Msg("product")
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO promotions (store_id, code, discount_type, discount_value, min_subtotal_cents)
		VALUES ($1, 'WELCOME10', 'percent', 10, 1000)
		ON CONFLICT (store_id, code) DO NOTHING`, storeID); err != nil {
		return fmt.Errorf("insert promotion: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
