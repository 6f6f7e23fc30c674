package core

import (
	"sync"

	"github.com/pkg/errors"
)

// InvalidID is never handed out by IdentifierAcquireNewID.
const InvalidID uint32 = 0

var (
	identifierMu sync.Mutex
	owners       []interface{}
)

// IdentifierAcquireNewID returns the lowest free id and records owner against
// it. Ids start at 1.
func IdentifierAcquireNewID(owner interface{}) uint32 {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if len(owners) == 0 {
		// slot 0 is reserved for InvalidID
		owners = make([]interface{}, 1, 100)
		owners[0] = struct{}{}
	}
	for i := 1; i < len(owners); i++ {
		// Existing free spot. Take it.
		if owners[i] == nil {
			owners[i] = owner
			return uint32(i)
		}
	}

	// No existing free slots, push one.
	owners = append(owners, owner)
	return uint32(len(owners) - 1)
}

// IdentifierOwner returns the owner recorded for id, or nil.
func IdentifierOwner(id uint32) interface{} {
	identifierMu.Lock()
	defer identifierMu.Unlock()
	if id == InvalidID || int(id) >= len(owners) {
		return nil
	}
	return owners[id]
}

// IdentifierReleaseID makes id available again.
func IdentifierReleaseID(id uint32) error {
	identifierMu.Lock()
	defer identifierMu.Unlock()

	if len(owners) == 0 {
		return errors.New("IdentifierReleaseID called before any id was acquired, nothing was done")
	}
	if id == InvalidID || int(id) >= len(owners) {
		return errors.Errorf("IdentifierReleaseID: id '%d' out of range (max=%d), nothing was done", id, len(owners)-1)
	}

	// Just zero out the entry, making it available for use.
	owners[id] = nil
	return nil
}
