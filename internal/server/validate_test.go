package server

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolcrib/internal/shared"
)

func TestNormalizeAsset(t *testing.T) {
	t.Run("uppercases inventory code", func(t *testing.T) {
		rec, err := NormalizeAsset(shared.AssetRequest{Title: "Drill", InvID: "inv-01"})
		require.NoError(t, err)
		assert.Equal(t, "Drill", rec.Title)
		assert.Equal(t, "INV-01", rec.InvID)
	})

	t.Run("collapses title whitespace", func(t *testing.T) {
		rec, err := NormalizeAsset(shared.AssetRequest{Title: "  Impact   Driver ", InvID: "INV_2"})
		require.NoError(t, err)
		assert.Equal(t, "Impact Driver", rec.Title)
	})

	bad := []struct {
		name string
		req  shared.AssetRequest
	}{
		{"empty title", shared.AssetRequest{Title: "", InvID: "INV-01"}},
		{"whitespace title", shared.AssetRequest{Title: "   ", InvID: "INV-01"}},
		{"title too long", shared.AssetRequest{Title: strings.Repeat("x", 201), InvID: "INV-01"}},
		{"inv code too short", shared.AssetRequest{Title: "Drill", InvID: "ab"}},
		{"inv code too long", shared.AssetRequest{Title: "Drill", InvID: strings.Repeat("A", 51)}},
		{"inv code bad characters", shared.AssetRequest{Title: "Drill", InvID: "INV 01"}},
		{"inv code empty", shared.AssetRequest{Title: "Drill", InvID: ""}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeAsset(tc.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func validUserReq() shared.UserRequest {
	return shared.UserRequest{Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret12", Role: "student"}
}

func TestNormalizeUser(t *testing.T) {
	t.Run("lowercases and trims email", func(t *testing.T) {
		req := validUserReq()
		req.Email = " Foo@Bar.com "
		rec, err := NormalizeUser(req)
		require.NoError(t, err)
		assert.Equal(t, "foo@bar.com", rec.Email)
	})

	t.Run("collapses name whitespace", func(t *testing.T) {
		req := validUserReq()
		req.Name = "  Ada   Lovelace "
		rec, err := NormalizeUser(req)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", rec.Name)
	})

	t.Run("keeps password and role", func(t *testing.T) {
		rec, err := NormalizeUser(validUserReq())
		require.NoError(t, err)
		assert.Equal(t, "secret12", rec.Password)
		assert.Equal(t, RoleStudent, rec.Role)
	})

	mutate := func(f func(*shared.UserRequest)) shared.UserRequest {
		req := validUserReq()
		f(&req)
		return req
	}
	bad := []struct {
		name string
		req  shared.UserRequest
	}{
		{"empty name", mutate(func(r *shared.UserRequest) { r.Name = "  " })},
		{"name too long", mutate(func(r *shared.UserRequest) { r.Name = strings.Repeat("a", 101) })},
		{"name bad characters", mutate(func(r *shared.UserRequest) { r.Name = "a@b#c" })},
		{"bad email", mutate(func(r *shared.UserRequest) { r.Email = "not-an-email" })},
		{"password too short", mutate(func(r *shared.UserRequest) { r.Password = "ab1" })},
		{"password too long", mutate(func(r *shared.UserRequest) { r.Password = strings.Repeat("a1", 65) })},
		{"password without digit", mutate(func(r *shared.UserRequest) { r.Password = "abcdefgh" })},
		{"password without letter", mutate(func(r *shared.UserRequest) { r.Password = "12345678" })},
		{"bad role", mutate(func(r *shared.UserRequest) { r.Role = "teacher" })},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeUser(tc.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}

func TestNormalizeCheckout(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("defaults status to active", func(t *testing.T) {
		assetID, due, status, err := NormalizeCheckout(shared.CheckoutRequest{
			AssetID: 1,
			DueAt:   "2026-03-08T12:00:00Z",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), assetID)
		assert.Equal(t, StatusActive, status)
		assert.Equal(t, time.UTC, due.Location())
	})

	t.Run("naive timestamp is read as UTC", func(t *testing.T) {
		_, due, _, err := NormalizeCheckout(shared.CheckoutRequest{
			AssetID: 1,
			DueAt:   "2026-03-08T12:00:00",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), due)
	})

	t.Run("offset timestamps are normalized to UTC", func(t *testing.T) {
		_, due, _, err := NormalizeCheckout(shared.CheckoutRequest{
			AssetID: 1,
			DueAt:   "2026-03-08T14:00:00+02:00",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), due)
	})

	t.Run("active checkout needs a future due date", func(t *testing.T) {
		_, _, _, err := NormalizeCheckout(shared.CheckoutRequest{
			AssetID: 1,
			DueAt:   "2026-03-01T12:00:00Z", // == now, not strictly future
			Status:  "active",
		}, now)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "due_at", ve.Field)
	})

	t.Run("returned payload may carry a past due date", func(t *testing.T) {
		_, _, status, err := NormalizeCheckout(shared.CheckoutRequest{
			AssetID: 1,
			DueAt:   "2026-02-01T12:00:00Z",
			Status:  "returned",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, StatusReturned, status)
	})

	bad := []struct {
		name string
		req  shared.CheckoutRequest
	}{
		{"zero asset id", shared.CheckoutRequest{AssetID: 0, DueAt: "2026-03-08T12:00:00Z"}},
		{"negative asset id", shared.CheckoutRequest{AssetID: -4, DueAt: "2026-03-08T12:00:00Z"}},
		{"empty due", shared.CheckoutRequest{AssetID: 1, DueAt: ""}},
		{"junk due", shared.CheckoutRequest{AssetID: 1, DueAt: "next tuesday"}},
		{"unknown status", shared.CheckoutRequest{AssetID: 1, DueAt: "2026-03-08T12:00:00Z", Status: "lost"}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := NormalizeCheckout(tc.req, now)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
}
