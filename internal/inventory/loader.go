// Package inventory implements the Inventory Loader (C1): it pulls a
// user's owned items from Postgres and normalizes them into the shape the
// selection core expects.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"itemrange/internal/selection"
)

// ErrUpstreamUnavailable covers pool exhaustion and connection failure.
var ErrUpstreamUnavailable = errors.New("inventory: upstream unavailable")

// ErrUpstreamQuery covers a failed query against an otherwise-healthy pool.
var ErrUpstreamQuery = errors.New("inventory: query failed")

const maxQty = 255

const selectOwnedItemsSQL = `
SELECT ic.item_id::bigint, COUNT(*), i.value::bigint
FROM item_copies ic
JOIN items i ON i.id = ic.item_id
WHERE ic.owner_id = $1 AND i.value::bigint <= $2
GROUP BY ic.item_id, i.value
ORDER BY i.value DESC
`

// Loader pulls and normalizes a user's owned items, capped by value and by
// the representational ceiling on quantity.
type Loader struct {
	pool *pgxpool.Pool
}

// NewLoader wraps an already-constructed pool. The pool's lifecycle (and
// its max-size cap) is the caller's responsibility; see cmd/server for the
// process-wide singleton.
func NewLoader(pool *pgxpool.Pool) *Loader {
	return &Loader{pool: pool}
}

// Load parses userID as a decimal integer and fetches that user's owned
// items with value <= maxValue, grouped by (item_id, value), clamping any
// quantity above the representational ceiling down to it.
func (l *Loader) Load(ctx context.Context, userID string, maxValue int64) ([]selection.InventoryItem, error) {
	ownerID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("inventory: user_id %q is not a decimal integer: %w", userID, err)
	}

	rows, err := l.pool.Query(ctx, selectOwnedItemsSQL, ownerID, maxValue)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer rows.Close()

	items := make([]selection.InventoryItem, 0, 64)
	for rows.Next() {
		var (
			itemID int64
			qty    int64
			value  int64
		)
		if err := rows.Scan(&itemID, &qty, &value); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamQuery, err)
		}
		if qty < 1 {
			continue
		}
		if qty > maxQty {
			qty = maxQty
		}
		items = append(items, selection.InventoryItem{ItemID: itemID, Value: value, Qty: uint8(qty)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamQuery, err)
	}

	return items, nil
}

// NewPool constructs the process-wide connection pool, capped at 16
// connections per spec. Called once at startup from cmd/server; pgxpool
// opens connections on demand rather than at construction.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("inventory: invalid connection string: %w", err)
	}
	cfg.MaxConns = 16

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return pool, nil
}

// Ping checks the pool is reachable, used by the /healthz endpoint.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer conn.Release()

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}

// Pinger adapts a pool to api.Pinger.
type Pinger struct {
	pool *pgxpool.Pool
}

// NewPinger wraps pool for use as the health-check collaborator.
func NewPinger(pool *pgxpool.Pool) Pinger {
	return Pinger{pool: pool}
}

// Ping satisfies api.Pinger.
func (p Pinger) Ping(ctx context.Context) error {
	return Ping(ctx, p.pool)
}
