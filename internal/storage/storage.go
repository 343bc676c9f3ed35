package storage

// SchemaReporter is implemented by providers backed by versioned
// migrations.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
