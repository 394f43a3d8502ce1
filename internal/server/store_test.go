package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both Store implementations must behave identically, so the suite runs
// against each.

func forEachStore(t *testing.T, run func(t *testing.T, s Store)) {
	t.Run("mem", func(t *testing.T) {
		run(t, NewMemStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		db, err := OpenDB(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		run(t, NewSQLiteStore(db))
	})
}

func TestStoreUsers(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		u1, err := s.CreateUser(UserRecord{Name: "Ada", Email: "ada@example.com", Password: "secret12", Role: RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u1.ID)

		u2, err := s.CreateUser(UserRecord{Name: "Bob", Email: "bob@example.com", Password: "secret12", Role: RoleStudent})
		require.NoError(t, err)
		assert.Equal(t, int64(2), u2.ID)

		got, err := s.GetUser(1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, RoleAdmin, got.Role)

		missing, err := s.GetUser(99)
		require.NoError(t, err)
		assert.Nil(t, missing)

		byEmail, err := s.GetUserByEmail("bob@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, int64(2), byEmail.ID)

		u2.Name = "Robert"
		require.NoError(t, s.UpdateUser(u2))
		got, err = s.GetUser(2)
		require.NoError(t, err)
		assert.Equal(t, "Robert", got.Name)

		users, err := s.ListUsers()
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestStoreIDsAreStableAcrossDeletes(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		for _, title := range []string{"Drill", "Saw", "Router"} {
			_, err := s.CreateAsset(AssetRecord{Title: title, InvID: "INV-" + title})
			require.NoError(t, err)
		}

		deleted, err := s.DeleteAsset(2)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "Saw", deleted.Title)

		// remaining ids do not shift
		assets, err := s.ListAssets()
		require.NoError(t, err)
		require.Len(t, assets, 2)
		assert.Equal(t, int64(1), assets[0].ID)
		assert.Equal(t, int64(3), assets[1].ID)

		gone, err := s.GetAsset(2)
		require.NoError(t, err)
		assert.Nil(t, gone)

		// a freed id is never handed out again
		next, err := s.CreateAsset(AssetRecord{Title: "Sander", InvID: "INV-S"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), next.ID)

		again, err := s.DeleteAsset(2)
		require.NoError(t, err)
		assert.Nil(t, again)
	})
}

func TestStoreCheckouts(t *testing.T) {
	due := time.Date(2030, 6, 1, 9, 30, 0, 0, time.UTC)

	forEachStore(t, func(t *testing.T, s Store) {
		c1, err := s.CreateCheckout(CheckoutRecord{AssetID: 1, OwnerID: 2, DueAt: due, Status: StatusActive})
		require.NoError(t, err)
		assert.Equal(t, int64(1), c1.ID)

		_, err = s.CreateCheckout(CheckoutRecord{AssetID: 5, OwnerID: 3, DueAt: due, Status: StatusOverdue})
		require.NoError(t, err)
		_, err = s.CreateCheckout(CheckoutRecord{AssetID: 7, OwnerID: 2, DueAt: due, Status: StatusReturned})
		require.NoError(t, err)

		got, err := s.GetCheckout(1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, due, got.DueAt)
		assert.Equal(t, StatusActive, got.Status)

		held, err := s.HasActiveCheckout(1)
		require.NoError(t, err)
		assert.True(t, held)
		held, err = s.HasActiveCheckout(5)
		require.NoError(t, err)
		assert.True(t, held, "overdue still holds the asset")
		held, err = s.HasActiveCheckout(7)
		require.NoError(t, err)
		assert.False(t, held, "returned frees the asset")

		mine, err := s.ListCheckoutsByOwner(2)
		require.NoError(t, err)
		assert.Len(t, mine, 2)
		all, err := s.ListCheckouts()
		require.NoError(t, err)
		assert.Len(t, all, 3)

		c1.Status = StatusReturned
		require.NoError(t, s.UpdateCheckout(c1))
		held, err = s.HasActiveCheckout(1)
		require.NoError(t, err)
		assert.False(t, held)

		deleted, err := s.DeleteCheckout(2)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		held, err = s.HasActiveCheckout(5)
		require.NoError(t, err)
		assert.False(t, held, "deleting the checkout frees the asset")
	})
}
