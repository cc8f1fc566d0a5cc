package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	LoginsSucceeded uint64
	LoginsFailed    uint64
	StudentsCreated uint64
	StudentsUpdated uint64
	StudentsDeleted uint64
	PersonsCreated  uint64
	PersonsDeleted  uint64
}

// InMemoryRecorder stores counters in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	loginsSucceeded uint64
	loginsFailed    uint64
	studentsCreated uint64
	studentsUpdated uint64
	studentsDeleted uint64
	personsCreated  uint64
	personsDeleted  uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		LoginsSucceeded: atomic.LoadUint64(&m.loginsSucceeded),
		LoginsFailed:    atomic.LoadUint64(&m.loginsFailed),
		StudentsCreated: atomic.LoadUint64(&m.studentsCreated),
		StudentsUpdated: atomic.LoadUint64(&m.studentsUpdated),
		StudentsDeleted: atomic.LoadUint64(&m.studentsDeleted),
		PersonsCreated:  atomic.LoadUint64(&m.personsCreated),
		PersonsDeleted:  atomic.LoadUint64(&m.personsDeleted),
	}
}

func (m *InMemoryRecorder) UserRegistered() { atomic.AddUint64(&m.usersRegistered, 1) }
func (m *InMemoryRecorder) LoginSucceeded() { atomic.AddUint64(&m.loginsSucceeded, 1) }
func (m *InMemoryRecorder) LoginFailed()    { atomic.AddUint64(&m.loginsFailed, 1) }
func (m *InMemoryRecorder) StudentCreated() { atomic.AddUint64(&m.studentsCreated, 1) }
func (m *InMemoryRecorder) StudentUpdated() { atomic.AddUint64(&m.studentsUpdated, 1) }
func (m *InMemoryRecorder) StudentDeleted() { atomic.AddUint64(&m.studentsDeleted, 1) }
func (m *InMemoryRecorder) PersonCreated()  { atomic.AddUint64(&m.personsCreated, 1) }
func (m *InMemoryRecorder) PersonDeleted()  { atomic.AddUint64(&m.personsDeleted, 1) }
