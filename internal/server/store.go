package server

import "time"

type UserRecord struct {
	ID       int64
	Name     string
	Email    string // normalized lowercase
	Password string // opaque credential, never serialized
	Role     Role
}

type AssetRecord struct {
	ID    int64
	Title string
	InvID string // normalized uppercase inventory code
}

type CheckoutRecord struct {
	ID      int64
	AssetID int64
	OwnerID int64
	DueAt   time.Time // always UTC
	Status  Status
}

// Store is the record storage surface. Ids are assigned by the store:
// 1-based, monotonically increasing per collection, never reused or
// shifted by deletes. Lookups return (nil, nil) for a missing id; the
// service layer turns that into a not-found failure.
type Store interface {
	CreateUser(u UserRecord) (UserRecord, error)
	GetUser(id int64) (*UserRecord, error)
	GetUserByEmail(email string) (*UserRecord, error)
	ListUsers() ([]UserRecord, error)
	UpdateUser(u UserRecord) error
	DeleteUser(id int64) (*UserRecord, error)

	CreateAsset(a AssetRecord) (AssetRecord, error)
	GetAsset(id int64) (*AssetRecord, error)
	ListAssets() ([]AssetRecord, error)
	UpdateAsset(a AssetRecord) error
	DeleteAsset(id int64) (*AssetRecord, error)

	CreateCheckout(c CheckoutRecord) (CheckoutRecord, error)
	GetCheckout(id int64) (*CheckoutRecord, error)
	ListCheckouts() ([]CheckoutRecord, error)
	ListCheckoutsByOwner(ownerID int64) ([]CheckoutRecord, error)
	UpdateCheckout(c CheckoutRecord) error
	DeleteCheckout(id int64) (*CheckoutRecord, error)

	// HasActiveCheckout reports whether any checkout holds the asset,
	// i.e. has status active or overdue.
	HasActiveCheckout(assetID int64) (bool, error)
}
