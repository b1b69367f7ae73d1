package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientStock indicates that a requested quantity change would drive a
// stock entry below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrInvalidTransition indicates that an operation was attempted in a document
// state that disallows it (e.g. editing a committed document).
var ErrInvalidTransition = errors.New("invalid document state transition")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
