package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation failed")
	ErrNotEmpty    = errors.New("folder not empty")
	ErrStorage     = errors.New("storage failure")
	ErrInvalidMove = errors.New("invalid move")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports a rap or folder that doesn't exist
type NotFoundError struct {
	Kind string // "rap" or "folder"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NotEmptyError is returned when deleting a folder that still has direct children
type NotEmptyError struct {
	FolderID string
	Folders  int
	Raps     int
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("cannot delete folder %s: it contains %d folder(s) and %d rap(s), move or delete them first",
		e.FolderID, e.Folders, e.Raps)
}

func (e *NotEmptyError) Is(target error) bool {
	return target == ErrNotEmpty
}

// MoveError represents a move-related failure
type MoveError struct {
	SourceID string
	DestID   string
	Reason   string
}

func (e *MoveError) Error() string {
	dest := e.DestID
	if dest == "" {
		dest = "root"
	}
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceID, dest, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidMove || target == ErrValidation
}

// StorageError wraps a failure of the underlying key-value store
type StorageError struct {
	Op  string // "get", "set", "remove", "encode"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
