package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserIdentity is the logged-in staff member. The JSON layout matches the
// "user" record persisted by the login flow.
type UserIdentity struct {
	Email     string  `json:"email"`
	StaffID   StaffID `json:"staffid"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

// FullName joins first and last name, trimming a missing last name.
func (u UserIdentity) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Valid reports whether the identity carries enough to attribute a session.
func (u UserIdentity) Valid() bool {
	return u.Email != "" && u.StaffID != ""
}

// StaffID is the CRM staff identifier. The CRM emits it either as a JSON
// number or a string; it is always sent back as a string.
type StaffID string

func (s *StaffID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = StaffID(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("staff id: %w", err)
	}
	*s = StaffID(n.String())
	return nil
}
