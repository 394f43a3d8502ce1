package shared

import "time"

type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserOut never carries the credential.
type UserOut struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AssetRequest struct {
	Title string `json:"title"`
	InvID string `json:"inv_id"`
}

type AssetOut struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	InvID string `json:"inv_id"`
}

type CheckoutRequest struct {
	AssetID int64 `json:"asset_id"`
	// RFC3339; a timestamp without a zone is read as UTC.
	DueAt  string `json:"due_at"`
	Status string `json:"status,omitempty"`
}

type CheckoutOut struct {
	ID      int64     `json:"id"`
	AssetID int64     `json:"asset_id"`
	DueAt   time.Time `json:"due_at"`
	Status  string    `json:"status"`
	OwnerID int64     `json:"owner_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
