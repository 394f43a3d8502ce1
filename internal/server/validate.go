package server

import (
	"regexp"
	"strings"
	"time"

	"toolcrib/internal/shared"
)

// Input sanitization. Runs in the HTTP layer so the core only ever sees
// normalized data.

var (
	invIDRe   = regexp.MustCompile(`^[A-Z0-9_-]+$`)
	nameRe    = regexp.MustCompile(`^[\w\s\-'.]+$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`\d`)
)

// collapseSpace trims and squeezes inner whitespace to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeAsset validates an asset payload and returns the record to
// store (without an id). Title is trimmed with whitespace collapsed;
// the inventory code is uppercased.
func NormalizeAsset(in shared.AssetRequest) (AssetRecord, error) {
	title := collapseSpace(in.Title)
	if title == "" {
		return AssetRecord{}, invalid("title", "must not be empty")
	}
	if len(title) > 200 {
		return AssetRecord{}, invalid("title", "must be at most 200 characters")
	}

	invID := strings.ToUpper(strings.TrimSpace(in.InvID))
	if len(invID) < 3 {
		return AssetRecord{}, invalid("inv_id", "must be at least 3 characters")
	}
	if len(invID) > 50 {
		return AssetRecord{}, invalid("inv_id", "must be at most 50 characters")
	}
	if !invIDRe.MatchString(invID) {
		return AssetRecord{}, invalid("inv_id", "must contain only letters, numbers, dashes, and underscores")
	}

	return AssetRecord{Title: title, InvID: invID}, nil
}

// NormalizeUser validates a user payload and returns the record to
// store (without an id). Email comes back trimmed and lowercased, which
// is what makes the uniqueness check case-insensitive.
func NormalizeUser(in shared.UserRequest) (UserRecord, error) {
	name := collapseSpace(in.Name)
	if name == "" {
		return UserRecord{}, invalid("name", "must not be empty")
	}
	if len(name) > 100 {
		return UserRecord{}, invalid("name", "must be at most 100 characters")
	}
	if !nameRe.MatchString(name) {
		return UserRecord{}, invalid("name", "contains invalid characters")
	}

	email := strings.TrimSpace(in.Email)
	if !emailRe.MatchString(email) {
		return UserRecord{}, invalid("email", "must be a valid email address")
	}
	email = strings.ToLower(email)

	if len(in.Password) < 8 {
		return UserRecord{}, invalid("password", "must be at least 8 characters")
	}
	if len(in.Password) > 128 {
		return UserRecord{}, invalid("password", "must be at most 128 characters")
	}
	if !hasLetter.MatchString(in.Password) {
		return UserRecord{}, invalid("password", "must contain at least one letter")
	}
	if !hasDigit.MatchString(in.Password) {
		return UserRecord{}, invalid("password", "must contain at least one digit")
	}

	role, ok := ParseRole(in.Role)
	if !ok {
		return UserRecord{}, invalid("role", `must be "admin" or "student"`)
	}

	return UserRecord{Name: name, Email: email, Password: in.Password, Role: role}, nil
}

// naive timestamps carry no zone and are read as UTC
const naiveTimeLayout = "2006-01-02T15:04:05"

// NormalizeCheckout validates a checkout payload. The returned due time
// is in UTC; an omitted status defaults to active. A payload asking for
// active must have a strictly future due time.
func NormalizeCheckout(in shared.CheckoutRequest, now time.Time) (assetID int64, dueAt time.Time, status Status, err error) {
	if in.AssetID < 1 {
		return 0, time.Time{}, StatusNone, invalid("asset_id", "must be a positive integer")
	}

	raw := strings.TrimSpace(in.DueAt)
	if raw == "" {
		return 0, time.Time{}, StatusNone, invalid("due_at", "must not be empty")
	}
	due, perr := time.Parse(time.RFC3339, raw)
	if perr != nil {
		due, perr = time.Parse(naiveTimeLayout, raw)
	}
	if perr != nil {
		return 0, time.Time{}, StatusNone, invalid("due_at", "must be an RFC 3339 timestamp")
	}
	due = due.UTC()

	status = StatusActive
	if in.Status != "" {
		var ok bool
		status, ok = ParseStatus(in.Status)
		if !ok {
			return 0, time.Time{}, StatusNone, invalid("status", `must be "active", "overdue" or "returned"`)
		}
	}

	if status == StatusActive && !due.After(now) {
		return 0, time.Time{}, StatusNone, invalid("due_at", "must be in the future for active checkouts")
	}

	return in.AssetID, due, status, nil
}
