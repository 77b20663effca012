package domain

import "errors"

// ErrValidation is returned when input fails a business rule (missing
// address, non-numeric coordinates, blank search query, ...).
// Handlers map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrNotFound is returned when a slug or id lookup yields nothing where the
// caller expected a record. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrNotOwner is returned when an update is attempted by someone other than
// the store's author. Raised before any mutation is applied.
var ErrNotOwner = errors.New("not the owner")

// ErrSlugTaken is returned when the storage layer's unique slug index
// rejects an insert or update that lost a slug race.
var ErrSlugTaken = errors.New("slug already taken")
