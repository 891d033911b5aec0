/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flash

import (
	"fmt"

	"github.com/spf13/afero"
)

// SizeUnknown is passed to Begin when the server does not advertise a
// content length for the firmware image.
const SizeUnknown int64 = -1

// Writer is the flash-write transaction consumed by the installer. A
// transaction has exactly one legal lifecycle: Begin, any number of
// Writes, then End on success or Abort on any failure. It must never
// be left half-open.
type Writer interface {
	Begin(expectedSize int64) error
	Write(p []byte) (n int, err error)
	End() error
	IsFinished() bool
	Abort() error
}

var backends = make(map[string]Backend)

// Backend represents a flash writer implementation
type Backend struct {
	Name              string
	CheckRequirements func() error
	NewWriter         func(fs afero.Fs, target string) Writer
}

func (b Backend) Unregister() {
	delete(backends, b.Name)
}

// RegisterBackend registers a new flash backend
func RegisterBackend(b Backend) Backend {
	backends[b.Name] = b
	return b
}

// NewWriter creates a writer for the named backend targeting "target"
func NewWriter(name string, fs afero.Fs, target string) (Writer, error) {
	if b, ok := backends[name]; ok {
		return b.NewWriter(fs, target), nil
	}

	return nil, fmt.Errorf("flash backend '%s' is not registered", name)
}

// CheckBackendRequirements checks the requirements of the named
// backend only, so an unused backend cannot keep the agent from
// starting
func CheckBackendRequirements(name string) error {
	if b, ok := backends[name]; ok {
		return b.CheckRequirements()
	}

	return fmt.Errorf("flash backend '%s' is not registered", name)
}

// CheckRequirements iterates over all registered backends and checks for their requirements
func CheckRequirements() error {
	for _, b := range backends {
		if err := b.CheckRequirements(); err != nil {
			return err
		}
	}

	return nil
}
