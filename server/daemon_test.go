/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestNewDaemon(t *testing.T) {
	dir, err := ioutil.TempDir("", "otaup-server-test")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	rb, err := NewReleaseBackend(afero.NewOsFs(), dir)
	assert.NoError(t, err)

	d, err := NewDaemon(rb, dir)
	assert.NoError(t, err)
	assert.NotNil(t, d)
}

func TestNewDaemonWithNonexistentDirectory(t *testing.T) {
	rb := &ReleaseBackend{Store: afero.NewOsFs(), path: "/nonexistent"}

	d, err := NewDaemon(rb, "/nonexistent")
	assert.Error(t, err)
	assert.Nil(t, d)
}

func TestDaemonReprocessesOnManifestWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "otaup-server-test")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)

	rb, err := NewReleaseBackend(afero.NewOsFs(), dir)
	assert.NoError(t, err)

	d, err := NewDaemon(rb, dir)
	assert.NoError(t, err)

	done := make(chan bool)
	go func() {
		d.Run()
		done <- true
	}()

	<-d.started

	err = ioutil.WriteFile(path.Join(dir, ManifestFilename), []byte(validManifest), 0644)
	assert.NoError(t, err)

	<-d.manifestWritten

	release := rb.release()
	assert.NotNil(t, release)
	assert.Equal(t, "1.1.0", release.manifest.Version)

	// removing the watched directory winds the daemon down
	assert.NoError(t, os.RemoveAll(dir))

	<-done
}
