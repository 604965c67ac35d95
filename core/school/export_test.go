package school

import "time"

// MockNow freezes the service clock until the returned func is called.
func MockNow(now time.Time) (reset func()) {
	orig := nowFunc
	nowFunc = func() time.Time { return now }
	return func() { nowFunc = orig }
}

// MockIDs makes the service hand out ids from ids, in order, until the returned func is called.
func MockIDs(ids ...string) (reset func()) {
	orig := newID
	newID = func(prefix string) string {
		if len(ids) == 0 {
			return prefix + "-exhausted"
		}
		id := ids[0]
		ids = ids[1:]
		return id
	}
	return func() { newID = orig }
}
