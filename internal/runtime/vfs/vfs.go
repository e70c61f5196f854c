package vfs

import "time"

// WatchOp is a bitmask describing what kind of change a watched path saw.
type WatchOp uint32

const (
	OpCreate WatchOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Event describes a single filesystem change observed by a Watcher.
type Event struct {
	Path string
	Op   WatchOp
	Time time.Time
}

// Watcher is the minimal interface internal/workload depends on;
// FSNotifyWatcher is its only implementation.
type Watcher interface {
	Events() <-chan Event
	Errors() <-chan error
	Add(name string) error
	Remove(name string) error
	Close() error
}
