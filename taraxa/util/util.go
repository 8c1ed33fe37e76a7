package util

import "sync"

// Locks and returns the unlock, for `defer util.LockUnlock(&mu)()`
func LockUnlock(lock sync.Locker) (unlock func()) {
	lock.Lock()
	return lock.Unlock
}
