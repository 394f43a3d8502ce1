package server

import "sync"

// MemStore keeps all records in process memory. This is the reference
// store: state starts empty at boot and dies with the process.
type MemStore struct {
	mu sync.Mutex

	users     []UserRecord
	assets    []AssetRecord
	checkouts []CheckoutRecord

	nextUserID     int64
	nextAssetID    int64
	nextCheckoutID int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		nextUserID:     1,
		nextAssetID:    1,
		nextCheckoutID: 1,
	}
}

func (s *MemStore) CreateUser(u UserRecord) (UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.nextUserID
	s.nextUserID++
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemStore) GetUser(id int64) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStore) GetUserByEmail(email string) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListUsers() ([]UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UserRecord, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemStore) UpdateUser(u UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return nil
		}
	}
	return nil
}

func (s *MemStore) DeleteUser(id int64) (*UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			s.users = append(s.users[:i], s.users[i+1:]...)
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateAsset(a AssetRecord) (AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.nextAssetID
	s.nextAssetID++
	s.assets = append(s.assets, a)
	return a, nil
}

func (s *MemStore) GetAsset(id int64) (*AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assets {
		if s.assets[i].ID == id {
			a := s.assets[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListAssets() ([]AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]AssetRecord, len(s.assets))
	copy(out, s.assets)
	return out, nil
}

func (s *MemStore) UpdateAsset(a AssetRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assets {
		if s.assets[i].ID == a.ID {
			s.assets[i] = a
			return nil
		}
	}
	return nil
}

func (s *MemStore) DeleteAsset(id int64) (*AssetRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assets {
		if s.assets[i].ID == id {
			a := s.assets[i]
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			return &a, nil
		}
	}
	return nil, nil
}

func (s *MemStore) CreateCheckout(c CheckoutRecord) (CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextCheckoutID
	s.nextCheckoutID++
	s.checkouts = append(s.checkouts, c)
	return c, nil
}

func (s *MemStore) GetCheckout(id int64) (*CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checkouts {
		if s.checkouts[i].ID == id {
			c := s.checkouts[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemStore) ListCheckouts() ([]CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CheckoutRecord, len(s.checkouts))
	copy(out, s.checkouts)
	return out, nil
}

func (s *MemStore) ListCheckoutsByOwner(ownerID int64) ([]CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []CheckoutRecord{}
	for _, c := range s.checkouts {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *MemStore) UpdateCheckout(c CheckoutRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checkouts {
		if s.checkouts[i].ID == c.ID {
			s.checkouts[i] = c
			return nil
		}
	}
	return nil
}

func (s *MemStore) DeleteCheckout(id int64) (*CheckoutRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.checkouts {
		if s.checkouts[i].ID == id {
			c := s.checkouts[i]
			s.checkouts = append(s.checkouts[:i], s.checkouts[i+1:]...)
			return &c, nil
		}
	}
	return nil, nil
}

func (s *MemStore) HasActiveCheckout(assetID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.checkouts {
		if c.AssetID == assetID && (c.Status == StatusActive || c.Status == StatusOverdue) {
			return true, nil
		}
	}
	return false, nil
}
