package models

import "errors"

// ErrParticipantInUse is returned when removing a participant that the
// expense or payment log still refers to.
var ErrParticipantInUse = errors.New("participant in use")
