package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors shared by the services; controllers map them onto HTTP
// status codes.
var (
	ErrNotFound           = errors.New("not_found")
	ErrAlreadyExists      = errors.New("already_exists")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSessionExpired     = errors.New("session_expired")
	ErrNoWizard           = errors.New("no_pending_selection")
	ErrWizardExpired      = errors.New("selection_expired")
	ErrRoomHasNoType      = errors.New("room_has_no_type")
)

// isDuplicateErr detects unique-key violations from MySQL (error 1062) and,
// by message, from the SQLite driver used in tests.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
