package domain

import "errors"

// ErrInvalidCapacity is returned when a history is constructed with a non-positive capacity.
var ErrInvalidCapacity = errors.New("capacity must be positive")

// ErrDuplicateState is returned when two objects with the same identity are captured into one snapshot.
var ErrDuplicateState = errors.New("duplicate state identity in snapshot")

// ErrIdentityMismatch is returned by LoadState when the state describes a different object.
var ErrIdentityMismatch = errors.New("state identity does not match object")

// ErrReentrant is returned when the history is invoked from one of its own callbacks.
var ErrReentrant = errors.New("history called re-entrantly from a callback")

// ErrSourceNotFound is returned when a source descriptor cannot be resolved by a library.
var ErrSourceNotFound = errors.New("source not found")

// ErrObjectNotFound is returned when an identity is not known to the factory.
var ErrObjectNotFound = errors.New("object not found")
