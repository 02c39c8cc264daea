package models

import "time"

// Account is a stored credential record. The password is kept as the opaque
// string the user supplied and compared by plain equality; it is excluded
// from every API response.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountRecord is the persisted form of an Account, password included.
type AccountRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToRecord converts an Account for persistence.
func (a Account) ToRecord() AccountRecord {
	return AccountRecord{ID: a.ID, Email: a.Email, Username: a.Username, Password: a.Password, CreatedAt: a.CreatedAt}
}

// ToAccount converts a persisted record back to an Account.
func (r AccountRecord) ToAccount() Account {
	return Account{ID: r.ID, Email: r.Email, Username: r.Username, Password: r.Password, CreatedAt: r.CreatedAt}
}
