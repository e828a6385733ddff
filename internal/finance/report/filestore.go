// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// unsafeFilenameChars matches everything that may not appear in a stored
// file name.
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// DiskFileStore archives report files in a local directory.
type DiskFileStore struct {
	directory string
}

// NewDiskFileStore creates a [FileStore] rooted at directory.
func NewDiskFileStore(directory string) *DiskFileStore {
	return &DiskFileStore{directory: directory}
}

/*
Save writes the uploaded file under a timestamped, collision-free name.

The stored name is "<unix-millis>_<random-hex>_<sanitized-original>", so two
uploads of the same file never clash and the original name stays readable.

Parameters:
  - context: context.Context
  - originalName: the client-supplied file name
  - data: file contents

Returns:
  - string: Path of the archived copy
  - error: I/O failures
*/
func (store *DiskFileStore) Save(context context.Context, originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(store.directory, 0o755); err != nil {
		return "", fmt.Errorf("filestore_mkdir_failed: %w", err)
	}

	random := make([]byte, 8)
	if _, err := rand.Read(random); err != nil {
		return "", fmt.Errorf("filestore_random_failed: %w", err)
	}

	storedName := fmt.Sprintf("%d_%s_%s",
		time.Now().UnixMilli(),
		hex.EncodeToString(random),
		unsafeFilenameChars.ReplaceAllString(originalName, "_"),
	)

	path := filepath.Join(store.directory, storedName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("filestore_write_failed: %w", err)
	}
	return path, nil
}
