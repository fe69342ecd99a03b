//go:build integration

package database_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shareit/model"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	"shareit/util/database"
	"shareit/util/page"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupDB(t *testing.T) *database.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("shareit"),
		postgres.WithUsername("shareit"),
		postgres.WithPassword("shareit"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pg.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.New(ctx, dsn, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, db.Migrate(ctx))
	// applying twice must be harmless
	require.NoError(t, db.Migrate(ctx))
	return db
}

type fixture struct {
	owner, booker model.User
	drill, saw    model.Item
}

func seed(t *testing.T, db *database.DB) fixture {
	t.Helper()
	ctx := context.Background()
	users := userrepo.New(db)
	items := itemrepo.New(db)

	f := fixture{
		owner:  model.User{Name: "Owner", Email: "owner@example.com"},
		booker: model.User{Name: "Booker", Email: "booker@example.com"},
	}
	require.NoError(t, users.Create(ctx, &f.owner))
	require.NoError(t, users.Create(ctx, &f.booker))

	f.drill = model.Item{Name: "Drill", Description: "cordless drill", Available: true, OwnerID: f.owner.ID}
	f.saw = model.Item{Name: "Saw", Description: "drill not included", Available: false, OwnerID: f.owner.ID}
	require.NoError(t, items.Create(ctx, &f.drill))
	require.NoError(t, items.Create(ctx, &f.saw))
	return f
}

func TestRepositories(t *testing.T) {
	db := setupDB(t)
	f := seed(t, db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	items := itemrepo.New(db)
	bookings := bookingrepo.New(db)

	t.Run("search excludes unavailable items on both matches", func(t *testing.T) {
		out, err := items.Search(ctx, "DRILL", page.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, f.drill.ID, out[0].ID)

		dup, err := items.ExistsMatching(ctx, "drill not")
		require.NoError(t, err)
		require.True(t, dup, "availability is ignored for duplicate checks")
	})

	t.Run("duplicate email is a unique violation", func(t *testing.T) {
		err := userrepo.New(db).Create(ctx, &model.User{Name: "Clone", Email: f.owner.Email})
		require.Error(t, err)
	})

	t.Run("status changes only once under contention", func(t *testing.T) {
		b := &model.Booking{
			Start: now.Add(time.Hour), End: now.Add(2 * time.Hour),
			ItemID: f.drill.ID, BookerID: f.booker.ID, Status: model.BookingWaiting,
		}
		require.NoError(t, bookings.Create(ctx, b))

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for _, st := range []model.BookingStatus{model.BookingApproved, model.BookingRejected, model.BookingApproved} {
			wg.Add(1)
			go func(st model.BookingStatus) {
				defer wg.Done()
				ok, err := bookings.SetStatusIfWaiting(ctx, b.ID, st)
				if err == nil && ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(st)
		}
		wg.Wait()
		require.Equal(t, 1, wins)

		full, err := bookings.FullByIDForOwner(ctx, b.ID, f.owner.ID)
		require.NoError(t, err)
		require.NotEqual(t, model.BookingWaiting, full.Status)
		require.Equal(t, f.booker.ID, full.Booker.ID)

		_, err = bookings.FullByIDForOwner(ctx, b.ID, f.booker.ID)
		require.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("listing by state and timeline", func(t *testing.T) {
		past := &model.Booking{
			Start: now.Add(-48 * time.Hour), End: now.Add(-24 * time.Hour),
			ItemID: f.drill.ID, BookerID: f.booker.ID, Status: model.BookingApproved,
		}
		require.NoError(t, bookings.Create(ctx, past))

		out, err := bookings.List(ctx, bookingrepo.Filter{
			BookerID: f.booker.ID, State: model.StatePast, Now: now, Page: page.Page{Limit: 10},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, past.ID, out[0].ID)

		all, err := bookings.List(ctx, bookingrepo.Filter{
			OwnerID: f.owner.ID, State: model.StateAll, Now: now, Page: page.Page{Limit: 10},
		})
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.True(t, all[0].Start.After(all[1].Start), "newest start first")

		last, err := bookings.LastForItem(ctx, f.drill.ID, now)
		require.NoError(t, err)
		require.Equal(t, past.ID, last.ID)

		finished, err := bookings.HasFinished(ctx, f.booker.ID, f.drill.ID, now)
		require.NoError(t, err)
		require.True(t, finished)

		none, err := bookings.LastForItem(ctx, f.saw.ID, now)
		require.NoError(t, err)
		require.Nil(t, none)
	})

	t.Run("comments carry the author name", func(t *testing.T) {
		comments := commentrepo.New(db)
		require.NoError(t, comments.Create(ctx, &model.Comment{
			Text: "works", ItemID: f.drill.ID, AuthorID: f.booker.ID, Created: now,
		}))
		out, err := comments.ByItem(ctx, f.drill.ID)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Equal(t, "Booker", out[0].AuthorName)
	})

	t.Run("requests list others and attach items", func(t *testing.T) {
		requests := requestrepo.New(db)
		rq := &model.ItemRequest{Description: "ladder", RequestorID: f.booker.ID, Created: now}
		require.NoError(t, requests.Create(ctx, rq))

		ladder := model.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: f.owner.ID, RequestID: &rq.ID}
		require.NoError(t, items.Create(ctx, &ladder))

		others, err := requests.Others(ctx, f.owner.ID, page.Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, others, 1)

		mine, err := requests.Others(ctx, f.booker.ID, page.Page{Limit: 10})
		require.NoError(t, err)
		require.Empty(t, mine)

		byReq, err := items.ByRequestIDs(ctx, []int64{rq.ID})
		require.NoError(t, err)
		require.Len(t, byReq[rq.ID], 1)
		require.Equal(t, ladder.ID, byReq[rq.ID][0].ID)
	})
}
