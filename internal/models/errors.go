package models

import "errors"

// Sentinel errors for the settings subsystem. Services wrap these with
// fmt.Errorf("...: %w", ...) so callers can match with errors.Is.
var (
	// ErrStorageInit means the persistence backend could not be opened or bound.
	ErrStorageInit = errors.New("failed to initialize settings store")

	// ErrStoreNotInitialized means an operation ran before Init.
	ErrStoreNotInitialized = errors.New("settings store not initialized")

	// ErrDeserialization means the persisted document is structurally invalid.
	ErrDeserialization = errors.New("failed to deserialize settings")

	// ErrSerialization means the record could not be encoded.
	ErrSerialization = errors.New("failed to serialize settings")

	// ErrImportParse means an import payload is not a valid settings export.
	ErrImportParse = errors.New("failed to parse settings export")

	// ErrMissingCredential means a connection test lacked its required field.
	ErrMissingCredential = errors.New("missing credential")

	// ErrUnknownProvider means the provider identifier is not in the catalog.
	ErrUnknownProvider = errors.New("unknown provider")
)
