package profile

import (
	"errors"
	"fmt"

	"github.com/abhisek/mathdash/internal/problemgen"
)

var (
	ErrInvalidUsername         = errors.New("invalid username")
	ErrDuplicateUser           = errors.New("username already exists")
	ErrUserNotFound            = errors.New("user not found")
	ErrUserArchived            = errors.New("user is archived")
	ErrArchivedDueToInactivity = errors.New("user archived due to inactivity")
	ErrNoActiveSession         = errors.New("no active session")
	ErrNoModeSelected          = errors.New("no game mode selected")
	ErrStorageUnavailable      = errors.New("storage unavailable")
	ErrCorruptRecord           = errors.New("corrupt user record")
)

// UsernameError explains why a username was rejected.
type UsernameError struct {
	Name   string
	Reason string
}

func (e *UsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Name, e.Reason)
}

func (e *UsernameError) Is(target error) bool { return target == ErrInvalidUsername }

const (
	reasonEmpty   = "empty"
	reasonLength  = "must be 3-15 characters"
	reasonCharset = "must be letters and digits only"
)

// StorageError is a failed read or write of the persisted record.
// It matches ErrStorageUnavailable with errors.Is.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageUnavailable }

// Message returns the text shown to the player for err.
func Message(err error) string {
	var uerr *UsernameError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &uerr):
		switch uerr.Reason {
		case reasonEmpty:
			return "Please enter a username."
		case reasonLength:
			return "Username must be between 3 and 15 characters."
		default:
			return "Username can only contain letters and numbers."
		}
	case errors.Is(err, ErrDuplicateUser):
		return "Username already exists. Please choose another one."
	case errors.Is(err, ErrUserArchived):
		return "This username has been archived due to inactivity."
	case errors.Is(err, ErrArchivedDueToInactivity):
		return "This username has been archived due to over 1 week of inactivity."
	case errors.Is(err, ErrUserNotFound):
		return "Username not found. Please create a new user."
	case errors.Is(err, ErrNoActiveSession):
		return "No valid user session. Please log in."
	case errors.Is(err, ErrNoModeSelected):
		return "Please choose a game mode."
	case errors.Is(err, ErrCorruptRecord):
		return "Saved game data is damaged. Run 'mathdash reset' to start over."
	case errors.Is(err, ErrStorageUnavailable):
		return "Could not reach saved game data. Storage may be unavailable."
	case errors.Is(err, problemgen.ErrProblemGeneration):
		return "Could not create a problem for this mode. Please pick another."
	}
	return "Something went wrong: " + err.Error()
}
