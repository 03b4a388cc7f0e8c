package model

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// NewID returns an identifier that is practically unique across sessions,
// so imported or merged projects never collide. Uniqueness is not enforced
// anywhere; callers must not rely on collision detection.
func NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	// No secure randomness available: a pseudo-random fragment plus a
	// base-36 time fragment is merely very likely unique.
	return strconv.FormatUint(rand.Uint64(), 36) + strconv.FormatInt(time.Now().UnixNano(), 36)
}
