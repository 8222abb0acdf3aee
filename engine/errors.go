package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity is matched by every *CapacityError.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrRange is matched by every *RangeError.
	ErrRange = errors.New("index out of range")

	ErrAlreadyInitialized = errors.New("engine already initialized")
)

// DeviceError reports that the audio device could not be bound, started or
// released. The engine is left uninitialized.
type DeviceError struct {
	Op  string // "open", "start" or "close"
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("audio device %s failed: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// CapacityError reports that a fixed-capacity collection was full. Nothing
// was created.
type CapacityError struct {
	What  string
	Limit int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("cannot add %s: maximum of %d reached", e.What, e.Limit)
}

func (e *CapacityError) Is(target error) bool { return target == ErrCapacity }

// RangeError reports an index outside [0, Len). The operation was a no-op.
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s index %d (have %d)", e.What, e.Index, e.Len)
}

func (e *RangeError) Is(target error) bool { return target == ErrRange }
