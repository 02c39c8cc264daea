package models

// Session is the reduced projection of the signed-in account that survives
// reloads. It is the durable record; bearer tokens issued by the HTTP layer
// are derived from it.
type Session struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SessionFromAccount builds the stored projection for an account.
func SessionFromAccount(a Account) Session {
	return Session{ID: a.ID, Email: a.Email, Username: a.Username}
}
