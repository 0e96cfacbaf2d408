package profile

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrNoProfile = errors.New("you have no profile yet, try running threef onboard")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
