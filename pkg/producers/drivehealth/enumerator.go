// SPDX-FileCopyrightText: 2025 Clyso GmbH and driveguard contributors
//
// SPDX-License-Identifier: Apache-2.0

package drivehealth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Enumeration source classes. The class names and their field schemas are
// fixed by the hardware-management subsystem, not by this package.
const (
	ClassPhysicalDisk             = "MSFT_PhysicalDisk"
	ClassDiskDrive                = "Win32_DiskDrive"
	ClassFailurePredictStatus     = "MSStorageDriver_FailurePredictStatus"
	ClassFailurePredictData       = "MSStorageDriver_FailurePredictData"
	ClassFailurePredictThresholds = "MSStorageDriver_FailurePredictThresholds"
)

// Enumerator is the seam to the hardware-management subsystem: one query per
// source class, returning that class's rows as raw property bags.
type Enumerator interface {
	Query(class string) ([]RawRecord, error)
}

// FileEnumerator serves enumeration rows from JSON dump files, one
// <class>.json per source class, each holding an array of objects. It backs
// offline analysis of captured dumps and the test suite. Parsed classes are
// cached; a watcher on the directory drops the cache entry when its file is
// rewritten, so long-running monitors pick up refreshed dumps.
type FileEnumerator struct {
	dir     string
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	cache map[string][]RawRecord
}

// NewFileEnumerator opens a file-backed enumerator over dir and starts the
// change watcher.
func NewFileEnumerator(dir string) (*FileEnumerator, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening enumeration dump dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("enumeration dump path %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("error watching %s: %w", dir, err)
	}

	e := &FileEnumerator{
		dir:     dir,
		watcher: watcher,
		cache:   make(map[string][]RawRecord),
	}
	go e.watchLoop()
	return e, nil
}

func (e *FileEnumerator) watchLoop() {
	for {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			class := classForFile(event.Name)
			if class == "" {
				continue
			}
			e.mu.Lock()
			delete(e.cache, class)
			e.mu.Unlock()
			log.Debug().Str("class", class).Str("file", event.Name).Msg("enumeration dump changed, cache dropped")
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("error watching enumeration dump dir")
		}
	}
}

func classForFile(path string) string {
	base := filepath.Base(path)
	if filepath.Ext(base) != ".json" {
		return ""
	}
	return base[:len(base)-len(".json")]
}

// Query returns the rows of one source class, reading and caching the
// class's dump file on first use.
func (e *FileEnumerator) Query(class string) ([]RawRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if rows, ok := e.cache[class]; ok {
		return rows, nil
	}

	raw, err := os.ReadFile(filepath.Join(e.dir, class+".json"))
	if err != nil {
		return nil, fmt.Errorf("error reading dump for class %s: %w", class, err)
	}

	var rows []RawRecord
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("error parsing dump for class %s: %w", class, err)
	}

	e.cache[class] = rows
	return rows, nil
}

// Close stops the change watcher.
func (e *FileEnumerator) Close() error {
	return e.watcher.Close()
}
