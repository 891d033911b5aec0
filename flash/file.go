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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func init() {
	RegisterBackend(Backend{
		Name:              "file",
		CheckRequirements: func() error { return nil },
		NewWriter: func(fs afero.Fs, target string) Writer {
			return &FileWriter{FileSystemBackend: fs, Target: target}
		},
	})
}

// FileWriter commits a firmware image to a regular file or a block
// device node. Bytes are staged on a ".part" sibling of the target and
// the stage is renamed over the target on End, so a failed download
// never touches the committed image.
type FileWriter struct {
	FileSystemBackend afero.Fs
	Target            string

	stage        afero.File
	expectedSize int64
	written      int64
	finished     bool
}

func (w *FileWriter) stagePath() string {
	return w.Target + ".part"
}

// Begin opens the staging file and records the expected image size.
// Passing SizeUnknown disables the size verification done by End.
func (w *FileWriter) Begin(expectedSize int64) error {
	if w.stage != nil {
		return errors.New("flash transaction already open")
	}

	f, err := w.FileSystemBackend.OpenFile(w.stagePath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w.stage = f
	w.expectedSize = expectedSize
	w.written = 0
	w.finished = false

	return nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	if w.stage == nil {
		return 0, errors.New("flash transaction not open")
	}

	n, err := w.stage.Write(p)
	w.written += int64(n)

	return n, err
}

// End verifies the staged image and commits it over the target path.
func (w *FileWriter) End() error {
	if w.stage == nil {
		return errors.New("flash transaction not open")
	}

	err := w.stage.Sync()
	if err == nil {
		err = w.stage.Close()
	} else {
		w.stage.Close()
	}

	w.stage = nil

	if err != nil {
		return err
	}

	if w.expectedSize != SizeUnknown && w.written != w.expectedSize {
		return fmt.Errorf("staged image has %d bytes, expected %d", w.written, w.expectedSize)
	}

	if err = w.FileSystemBackend.Rename(w.stagePath(), w.Target); err != nil {
		return err
	}

	w.finished = true

	return nil
}

// IsFinished tells whether the last transaction was fully committed
func (w *FileWriter) IsFinished() bool {
	return w.finished
}

// Abort discards the transaction and removes any staged bytes. It is
// safe to call with no transaction open.
func (w *FileWriter) Abort() error {
	w.finished = false

	if w.stage == nil {
		return nil
	}

	w.stage.Close()
	w.stage = nil

	return w.FileSystemBackend.Remove(w.stagePath())
}
