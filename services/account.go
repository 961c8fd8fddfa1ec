package services

import (
	"strings"
)

// AccountInput carries the fields needed to create an Admin or a User.
type AccountInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AccountPatch is a partial update; nil fields are left unchanged.
type AccountPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Password  *string
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// columns renders the patch as a gorm column map, hashing the password.
func (p AccountPatch) columns(passwords *PasswordService) (map[string]any, error) {
	updates := map[string]any{}
	if p.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*p.FirstName)
	}
	if p.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*p.LastName)
	}
	if p.Email != nil {
		updates["email"] = normalizeEmail(*p.Email)
	}
	if p.Password != nil && *p.Password != "" {
		hash, err := passwords.Hash(*p.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}
	return updates, nil
}
