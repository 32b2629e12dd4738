package engine

import "errors"

var (
	// ErrConfig indicates the workspace manifest or tool settings are missing or malformed.
	ErrConfig = errors.New("configuration error")

	// ErrNotFound indicates no package descriptor was found for a changed file.
	ErrNotFound = errors.New("not found")

	// ErrParse indicates a descriptor or intent record is missing a required field
	// or holds a value that cannot be interpreted.
	ErrParse = errors.New("parse error")

	// ErrIO indicates a read, write or delete of a managed file failed.
	ErrIO = errors.New("i/o error")

	// ErrSubprocess indicates a collaborator process could not run or failed.
	ErrSubprocess = errors.New("subprocess failed")

	// ErrValidation indicates a validation failure.
	ErrValidation = errors.New("validation failed")
)
