package services

import "sync"

// tableLocks serialises lifecycle operations per table number. Entries are
// never evicted; the number of tables in a restaurant is small.
type tableLocks struct {
	mu    sync.Mutex
	locks map[int]*sync.Mutex
}

func newTableLocks() *tableLocks {
	return &tableLocks{locks: make(map[int]*sync.Mutex)}
}

// lock acquires the mutex for table and returns its unlock func
func (l *tableLocks) lock(table int) func() {
	l.mu.Lock()
	m, ok := l.locks[table]
	if !ok {
		m = &sync.Mutex{}
		l.locks[table] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
