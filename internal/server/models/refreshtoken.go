package models

import "time"

// RefreshToken is the persisted, revocable half of a login lineage. Access
// tokens reference rows by ID; rows are deactivated on logout or rotation,
// never deleted.
type RefreshToken struct {
	ID        string
	UserID    string
	ExpireAt  int64 // unix seconds
	Active    bool
	CreatedAt time.Time
}
