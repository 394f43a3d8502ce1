package server

import (
	"database/sql"
	"errors"
	"time"
)

// SQLiteStore keeps records in the embedded database opened by OpenDB.
// Semantics match MemStore; AUTOINCREMENT provides the stable ids.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) CreateUser(u UserRecord) (UserRecord, error) {
	res, err := s.DB.Exec(
		`INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`,
		u.Name, u.Email, u.Password, string(u.Role),
	)
	if err != nil {
		return UserRecord{}, err
	}
	u.ID, err = res.LastInsertId()
	return u, err
}

func scanUser(row *sql.Row) (*UserRecord, error) {
	var u UserRecord
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Role = Role(role)
	return &u, nil
}

func (s *SQLiteStore) GetUser(id int64) (*UserRecord, error) {
	return scanUser(s.DB.QueryRow(
		`SELECT id, name, email, password, role FROM users WHERE id = ?`, id))
}

func (s *SQLiteStore) GetUserByEmail(email string) (*UserRecord, error) {
	return scanUser(s.DB.QueryRow(
		`SELECT id, name, email, password, role FROM users WHERE email = ?`, email))
}

func (s *SQLiteStore) ListUsers() ([]UserRecord, error) {
	rows, err := s.DB.Query(`SELECT id, name, email, password, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserRecord{}
	for rows.Next() {
		var u UserRecord
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &role); err != nil {
			return nil, err
		}
		u.Role = Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateUser(u UserRecord) error {
	_, err := s.DB.Exec(
		`UPDATE users SET name=?, email=?, password=?, role=? WHERE id=?`,
		u.Name, u.Email, u.Password, string(u.Role), u.ID,
	)
	return err
}

func (s *SQLiteStore) DeleteUser(id int64) (*UserRecord, error) {
	u, err := s.GetUser(id)
	if err != nil || u == nil {
		return nil, err
	}
	_, err = s.DB.Exec(`DELETE FROM users WHERE id=?`, id)
	return u, err
}

func (s *SQLiteStore) CreateAsset(a AssetRecord) (AssetRecord, error) {
	res, err := s.DB.Exec(
		`INSERT INTO assets (title, inv_id) VALUES (?, ?)`, a.Title, a.InvID)
	if err != nil {
		return AssetRecord{}, err
	}
	a.ID, err = res.LastInsertId()
	return a, err
}

func (s *SQLiteStore) GetAsset(id int64) (*AssetRecord, error) {
	row := s.DB.QueryRow(`SELECT id, title, inv_id FROM assets WHERE id = ?`, id)
	var a AssetRecord
	if err := row.Scan(&a.ID, &a.Title, &a.InvID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (s *SQLiteStore) ListAssets() ([]AssetRecord, error) {
	rows, err := s.DB.Query(`SELECT id, title, inv_id FROM assets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AssetRecord{}
	for rows.Next() {
		var a AssetRecord
		if err := rows.Scan(&a.ID, &a.Title, &a.InvID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpdateAsset(a AssetRecord) error {
	_, err := s.DB.Exec(`UPDATE assets SET title=?, inv_id=? WHERE id=?`, a.Title, a.InvID, a.ID)
	return err
}

func (s *SQLiteStore) DeleteAsset(id int64) (*AssetRecord, error) {
	a, err := s.GetAsset(id)
	if err != nil || a == nil {
		return nil, err
	}
	_, err = s.DB.Exec(`DELETE FROM assets WHERE id=?`, id)
	return a, err
}

func (s *SQLiteStore) CreateCheckout(c CheckoutRecord) (CheckoutRecord, error) {
	res, err := s.DB.Exec(
		`INSERT INTO checkouts (asset_id, owner_id, due_at, status) VALUES (?, ?, ?, ?)`,
		c.AssetID, c.OwnerID, c.DueAt.UTC().Format(time.RFC3339Nano), string(c.Status),
	)
	if err != nil {
		return CheckoutRecord{}, err
	}
	c.ID, err = res.LastInsertId()
	return c, err
}

func parseCheckoutRow(id, assetID, ownerID int64, dueAt, status string) (CheckoutRecord, error) {
	due, err := time.Parse(time.RFC3339Nano, dueAt)
	if err != nil {
		return CheckoutRecord{}, err
	}
	return CheckoutRecord{
		ID:      id,
		AssetID: assetID,
		OwnerID: ownerID,
		DueAt:   due.UTC(),
		Status:  Status(status),
	}, nil
}

func (s *SQLiteStore) GetCheckout(id int64) (*CheckoutRecord, error) {
	row := s.DB.QueryRow(
		`SELECT id, asset_id, owner_id, due_at, status FROM checkouts WHERE id = ?`, id)

	var cid, assetID, ownerID int64
	var dueAt, status string
	if err := row.Scan(&cid, &assetID, &ownerID, &dueAt, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	c, err := parseCheckoutRow(cid, assetID, ownerID, dueAt, status)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *SQLiteStore) listCheckouts(query string, args ...any) ([]CheckoutRecord, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CheckoutRecord{}
	for rows.Next() {
		var cid, assetID, ownerID int64
		var dueAt, status string
		if err := rows.Scan(&cid, &assetID, &ownerID, &dueAt, &status); err != nil {
			return nil, err
		}
		c, err := parseCheckoutRow(cid, assetID, ownerID, dueAt, status)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListCheckouts() ([]CheckoutRecord, error) {
	return s.listCheckouts(`SELECT id, asset_id, owner_id, due_at, status FROM checkouts ORDER BY id`)
}

func (s *SQLiteStore) ListCheckoutsByOwner(ownerID int64) ([]CheckoutRecord, error) {
	return s.listCheckouts(
		`SELECT id, asset_id, owner_id, due_at, status FROM checkouts WHERE owner_id = ? ORDER BY id`, ownerID)
}

func (s *SQLiteStore) UpdateCheckout(c CheckoutRecord) error {
	_, err := s.DB.Exec(
		`UPDATE checkouts SET asset_id=?, owner_id=?, due_at=?, status=? WHERE id=?`,
		c.AssetID, c.OwnerID, c.DueAt.UTC().Format(time.RFC3339Nano), string(c.Status), c.ID,
	)
	return err
}

func (s *SQLiteStore) DeleteCheckout(id int64) (*CheckoutRecord, error) {
	c, err := s.GetCheckout(id)
	if err != nil || c == nil {
		return nil, err
	}
	_, err = s.DB.Exec(`DELETE FROM checkouts WHERE id=?`, id)
	return c, err
}

func (s *SQLiteStore) HasActiveCheckout(assetID int64) (bool, error) {
	row := s.DB.QueryRow(
		`SELECT EXISTS (
			SELECT 1 FROM checkouts WHERE asset_id = ? AND status IN ('active', 'overdue')
		)`, assetID)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists == 1, nil
}
