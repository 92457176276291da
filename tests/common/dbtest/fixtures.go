//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestShop(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	shopID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO shops (id, name) VALUES ($1, $2)", shopID, name)
	require.NoError(t, err)

	return shopID
}

func CreateTestAppUser(t *testing.T, db DBLike, displayName string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO app_users (id, display_name) VALUES ($1, $2)", userID, displayName)
	require.NoError(t, err)

	return userID
}

// NoShowCount reads the counter bumped when a reservation is marked no-show.
func NoShowCount(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT no_show_count FROM app_users WHERE id = $1", userID).Scan(&n)
	require.NoError(t, err)

	return n
}

// CountNotificationJobs counts outbox rows written for a reservation.
func CountNotificationJobs(t *testing.T, db DBLike, reservationID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE payload->>'reservation_id' = $1", reservationID.String()).Scan(&n)
	require.NoError(t, err)

	return n
}

// CountActiveReservations counts pending and confirmed reservations in a shop.
func CountActiveReservations(t *testing.T, db DBLike, shopID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE shop_id = $1 AND status IN ('pending', 'confirmed')", shopID).Scan(&n)
	require.NoError(t, err)

	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	// Insert the shared demo shop
	_, err := pool.Exec(ctx, `
		INSERT INTO shops (id, name) VALUES
		    ('00000000-0000-0000-0000-000000000001', 'Default Shop')
		ON CONFLICT (id) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
