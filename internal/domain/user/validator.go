package user

import (
	"fmt"
	"strings"
)

const (
	minLoginLen    = 3
	maxLoginLen    = 32
	minPasswordLen = 4
	maxPasswordLen = 72 // bcrypt input limit
)

func validateRegister(login, password string) error {
	login = strings.TrimSpace(login)
	if len(login) < minLoginLen || len(login) > maxLoginLen {
		return fmt.Errorf("login must be between %d and %d characters", minLoginLen, maxLoginLen)
	}
	if strings.ContainsAny(login, " \t\n") {
		return fmt.Errorf("login must not contain whitespace")
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must be at most %d characters", maxPasswordLen)
	}
	return nil
}
