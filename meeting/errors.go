package meeting

import (
	"errors"
	"fmt"

	"github.com/CUknot/meetroom/repository"
)

var (
	ErrInvalidCredential = errors.New("invalid or expired credential")
	ErrForbidden         = errors.New("insufficient permissions")
	ErrNotParticipant    = fmt.Errorf("%w: not a participant of this room", ErrForbidden)
	ErrSelfMute          = errors.New("cannot change your own mute state")
	ErrNotFound          = errors.New("not found")
	ErrBlocked           = errors.New("muted by the room administrator")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrInfrastructure    = errors.New("infrastructure failure")
)

// storeFailure maps a persistence error onto the domain error set.
func storeFailure(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %w", ErrInfrastructure, err)
	}
}
