package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals a request that cannot be served at all.
	// Malformed feed parameters never produce it: they are dropped instead.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized signals a missing or unknown admin key.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrCollaboratorUnavailable signals a failed read from a collaborator
	// (listing storage, block or swipe store). The feed never degrades around it.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
	// ErrNotImplemented signals an unimplemented feature.
	ErrNotImplemented = errors.New("not implemented")
)
