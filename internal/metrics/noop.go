package metrics

// NoopRecorder discards all events.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (*NoopRecorder) UserRegistered() {}
func (*NoopRecorder) LoginSucceeded() {}
func (*NoopRecorder) LoginFailed()    {}
func (*NoopRecorder) StudentCreated() {}
func (*NoopRecorder) StudentUpdated() {}
func (*NoopRecorder) StudentDeleted() {}
func (*NoopRecorder) PersonCreated()  {}
func (*NoopRecorder) PersonDeleted()  {}
