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
	"os/exec"

	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/OSSystems/otaup/utils"
)

func init() {
	RegisterBackend(Backend{
		Name:              "mtd",
		CheckRequirements: checkMtdRequirements,
		NewWriter: func(fs afero.Fs, target string) Writer {
			return NewMtdWriter(fs, target)
		},
	})
}

func checkMtdRequirements() error {
	for _, binary := range []string{"flash_erase", "flashcp"} {
		_, err := exec.LookPath(binary)
		if err != nil {
			return err
		}
	}

	return nil
}

// MtdWriter commits a firmware image to a raw MTD NOR device. The
// image is spooled to a scratch file during the transaction and
// written out on End with flash_erase followed by flashcp, so the
// device is only touched once the whole image arrived.
type MtdWriter struct {
	FileSystemBackend afero.Fs
	utils.CmdLineExecuter
	Target string

	spool        afero.File
	expectedSize int64
	written      int64
	finished     bool
}

func NewMtdWriter(fs afero.Fs, target string) *MtdWriter {
	return &MtdWriter{
		FileSystemBackend: fs,
		CmdLineExecuter:   &utils.CmdLine{},
		Target:            target,
	}
}

func (w *MtdWriter) Begin(expectedSize int64) error {
	if w.spool != nil {
		return errors.New("flash transaction already open")
	}

	f, err := afero.TempFile(w.FileSystemBackend, "", "otaup-spool-")
	if err != nil {
		return err
	}

	w.spool = f
	w.expectedSize = expectedSize
	w.written = 0
	w.finished = false

	return nil
}

func (w *MtdWriter) Write(p []byte) (int, error) {
	if w.spool == nil {
		return 0, errors.New("flash transaction not open")
	}

	n, err := w.spool.Write(p)
	w.written += int64(n)

	return n, err
}

// End erases the target device and writes the spooled image to it.
func (w *MtdWriter) End() error {
	if w.spool == nil {
		return errors.New("flash transaction not open")
	}

	spoolPath := w.spool.Name()

	err := w.spool.Close()
	w.spool = nil

	if err != nil {
		w.FileSystemBackend.Remove(spoolPath)
		return err
	}

	defer w.FileSystemBackend.Remove(spoolPath)

	if w.expectedSize != SizeUnknown && w.written != w.expectedSize {
		return fmt.Errorf("spooled image has %d bytes, expected %d", w.written, w.expectedSize)
	}

	log.Debug("erasing MTD device: ", w.Target)

	_, err = w.Execute(fmt.Sprintf("flash_erase %s 0 0", w.Target))
	if err != nil {
		return err
	}

	log.Debug("writing image to MTD device: ", w.Target)

	_, err = w.Execute(fmt.Sprintf("flashcp %s %s", spoolPath, w.Target))
	if err != nil {
		return err
	}

	w.finished = true

	return nil
}

// IsFinished tells whether the last transaction was fully committed
func (w *MtdWriter) IsFinished() bool {
	return w.finished
}

// Abort discards the transaction and removes the spooled bytes. It is
// safe to call with no transaction open.
func (w *MtdWriter) Abort() error {
	w.finished = false

	if w.spool == nil {
		return nil
	}

	spoolPath := w.spool.Name()

	w.spool.Close()
	w.spool = nil

	return w.FileSystemBackend.Remove(spoolPath)
}
