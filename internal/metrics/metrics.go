// Package metrics provides lightweight counters for application events.
package metrics

// Recorder records application events. Implementations must be safe
// for concurrent use.
type Recorder interface {
	UserRegistered()
	LoginSucceeded()
	LoginFailed()
	StudentCreated()
	StudentUpdated()
	StudentDeleted()
	PersonCreated()
	PersonDeleted()
}
