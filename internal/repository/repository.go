// Package repository wraps the MongoDB collections behind typed stores with
// per-call timeouts. Business rules live above, in the services.
package repository

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no document. Services
// translate it into their domain-tagged errors.
var ErrNotFound = errors.New("document not found")

const (
	readTimeout  = 3 * time.Second
	writeTimeout = 5 * time.Second
	listTimeout  = 10 * time.Second
)
