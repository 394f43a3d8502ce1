package server

import (
	"sync"
	"time"
)

// Service orchestrates the stores and the policies. Every operation
// takes the caller identity explicitly and validates all preconditions
// before mutating anything.
//
// One mutex spans each whole operation so check-then-act sequences
// (availability check + insert on checkout creation) cannot interleave
// under net/http's concurrent handlers.
type Service struct {
	mu    sync.Mutex
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Users. All user operations are admin-only.

func (s *Service) ListUsers(caller Identity) ([]UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return nil, err
	}
	return s.store.ListUsers()
}

func (s *Service) GetUser(caller Identity, id int64) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return UserRecord{}, err
	}
	u, err := s.store.GetUser(id)
	if err != nil {
		return UserRecord{}, err
	}
	if u == nil {
		return UserRecord{}, notFound("user not found")
	}
	return *u, nil
}

func (s *Service) CreateUser(caller Identity, u UserRecord) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return UserRecord{}, err
	}
	existing, err := s.store.GetUserByEmail(u.Email)
	if err != nil {
		return UserRecord{}, err
	}
	if existing != nil {
		return UserRecord{}, conflict("user with this email already exists")
	}
	return s.store.CreateUser(u)
}

func (s *Service) UpdateUser(caller Identity, id int64, u UserRecord) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return UserRecord{}, err
	}
	existing, err := s.store.GetUser(id)
	if err != nil {
		return UserRecord{}, err
	}
	if existing == nil {
		return UserRecord{}, notFound("user not found")
	}
	// another record may already own the new email
	byEmail, err := s.store.GetUserByEmail(u.Email)
	if err != nil {
		return UserRecord{}, err
	}
	if byEmail != nil && byEmail.ID != id {
		return UserRecord{}, conflict("user with this email already exists")
	}
	u.ID = id
	if err := s.store.UpdateUser(u); err != nil {
		return UserRecord{}, err
	}
	return u, nil
}

func (s *Service) DeleteUser(caller Identity, id int64) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return UserRecord{}, err
	}
	u, err := s.store.DeleteUser(id)
	if err != nil {
		return UserRecord{}, err
	}
	if u == nil {
		return UserRecord{}, notFound("user not found")
	}
	return *u, nil
}

// Assets. Reads are public, writes admin-only.

func (s *Service) ListAssets() ([]AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ListAssets()
}

func (s *Service) GetAsset(id int64) (AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.store.GetAsset(id)
	if err != nil {
		return AssetRecord{}, err
	}
	if a == nil {
		return AssetRecord{}, notFound("asset not found")
	}
	return *a, nil
}

func (s *Service) CreateAsset(caller Identity, a AssetRecord) (AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return AssetRecord{}, err
	}
	return s.store.CreateAsset(a)
}

func (s *Service) UpdateAsset(caller Identity, id int64, a AssetRecord) (AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return AssetRecord{}, err
	}
	existing, err := s.store.GetAsset(id)
	if err != nil {
		return AssetRecord{}, err
	}
	if existing == nil {
		return AssetRecord{}, notFound("asset not found")
	}
	a.ID = id
	if err := s.store.UpdateAsset(a); err != nil {
		return AssetRecord{}, err
	}
	return a, nil
}

func (s *Service) DeleteAsset(caller Identity, id int64) (AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := RequireAdmin(caller); err != nil {
		return AssetRecord{}, err
	}
	a, err := s.store.DeleteAsset(id)
	if err != nil {
		return AssetRecord{}, err
	}
	if a == nil {
		return AssetRecord{}, notFound("asset not found")
	}
	return *a, nil
}

// Checkouts. The state machine lives here.

// ListCheckouts is ownership-scoped for non-admins, never a failure.
func (s *Service) ListCheckouts(caller Identity) ([]CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if caller.Role == RoleAdmin {
		return s.store.ListCheckouts()
	}
	return s.store.ListCheckoutsByOwner(caller.ID)
}

func (s *Service) GetCheckout(caller Identity, id int64) (CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.store.GetCheckout(id)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if c == nil {
		return CheckoutRecord{}, notFound("checkout not found")
	}
	if err := EnsureOwnerOrAdmin(c.OwnerID, caller); err != nil {
		return CheckoutRecord{}, err
	}
	return *c, nil
}

// CreateCheckout loans an asset to the caller. Precondition order:
// asset exists, asset not already held, status legal from none.
func (s *Service) CreateCheckout(caller Identity, assetID int64, dueAt time.Time, status Status) (CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if asset == nil {
		return CheckoutRecord{}, notFound("asset not found")
	}
	held, err := s.store.HasActiveCheckout(assetID)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if held {
		return CheckoutRecord{}, conflict("asset is already checked out")
	}
	if !CanTransition(StatusNone, status) {
		return CheckoutRecord{}, badTransition(StatusNone, status)
	}
	return s.store.CreateCheckout(CheckoutRecord{
		AssetID: assetID,
		OwnerID: caller.ID,
		DueAt:   dueAt.UTC(),
		Status:  status,
	})
}

// UpdateCheckout replaces asset/due/status on an existing record; id
// and owner are immutable.
func (s *Service) UpdateCheckout(caller Identity, id int64, assetID int64, dueAt time.Time, status Status) (CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.store.GetCheckout(id)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if existing == nil {
		return CheckoutRecord{}, notFound("checkout not found")
	}
	if err := EnsureOwnerOrAdmin(existing.OwnerID, caller); err != nil {
		return CheckoutRecord{}, err
	}
	asset, err := s.store.GetAsset(assetID)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if asset == nil {
		return CheckoutRecord{}, notFound("asset not found")
	}
	if !CanTransition(existing.Status, status) {
		return CheckoutRecord{}, badTransition(existing.Status, status)
	}

	updated := *existing
	updated.AssetID = assetID
	updated.DueAt = dueAt.UTC()
	updated.Status = status
	if err := s.store.UpdateCheckout(updated); err != nil {
		return CheckoutRecord{}, err
	}
	return updated, nil
}

// DeleteCheckout removes the record. The asset becomes available again
// implicitly: availability is computed, never stored.
func (s *Service) DeleteCheckout(caller Identity, id int64) (CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, err := s.store.GetCheckout(id)
	if err != nil {
		return CheckoutRecord{}, err
	}
	if existing == nil {
		return CheckoutRecord{}, notFound("checkout not found")
	}
	if err := EnsureOwnerOrAdmin(existing.OwnerID, caller); err != nil {
		return CheckoutRecord{}, err
	}
	c, err := s.store.DeleteCheckout(id)
	if err != nil {
		return CheckoutRecord{}, err
	}
	return *c, nil
}
