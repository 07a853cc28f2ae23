// Copyright (c) 2026 Velora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore implements [Store] over a single JSON file.
//
// # Security
//
// The file is written with 0600 permissions; the parent directory is created
// with 0700. Tokens are opaque bearer credentials and must not be readable
// by other local users.
type FileStore struct {
	path string
}

// NewFileStore creates a [FileStore] rooted at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

/*
Save writes the pair to disk atomically (write to temp file, then rename).

Parameters:
  - context: context.Context (unused; file IO is not cancellable)
  - pair: Pair

Returns:
  - error: Encoding or filesystem failures
*/
func (store *FileStore) Save(_ context.Context, pair Pair) error {

	// Ensure the parent directory exists
	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore_file_mkdir_failed: %w", err)
	}

	data, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("tokenstore_file_encode_failed: %w", err)
	}

	// Write-then-rename so a crash never leaves a half-written pair
	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore_file_write_failed: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		return fmt.Errorf("tokenstore_file_rename_failed: %w", err)
	}

	return nil
}

/*
Load reads the pair from disk.

Description: A missing file is the normal logged-out state and returns a
zero Pair without error. A corrupt file is treated the same way — the pair
is opaque and unrecoverable, so the only sane recovery is "logged out".

Parameters:
  - context: context.Context (unused)

Returns:
  - Pair: Stored pair, or the zero Pair
  - error: Filesystem failures other than absence
*/
func (store *FileStore) Load(_ context.Context) (Pair, error) {
	data, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Pair{}, nil
		}
		return Pair{}, fmt.Errorf("tokenstore_file_read_failed: %w", err)
	}

	var pair Pair
	if err := json.Unmarshal(data, &pair); err != nil {
		// Unreadable token material cannot be salvaged
		return Pair{}, nil
	}

	return pair, nil
}

/*
Clear removes the token file. Removing an already-absent file succeeds.

Parameters:
  - context: context.Context (unused)

Returns:
  - error: Filesystem failures other than absence
*/
func (store *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore_file_clear_failed: %w", err)
	}
	return nil
}
