/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"sync"

	"github.com/OSSystems/pkg/log"
	"github.com/julienschmidt/httprouter"
	"github.com/spf13/afero"

	"github.com/OSSystems/otaup/manifest"
)

// ManifestFilename is the name of the release manifest inside a
// release directory
const ManifestFilename = "latest.json"

type SelectedRelease struct {
	manifest    *manifest.Manifest
	rawManifest []byte
}

// ReleaseBackend serves a release directory to devices on the local
// network: the manifest under /latest.json and the firmware binaries
// next to it under /firmware/:name.
type ReleaseBackend struct {
	Store afero.Fs

	path            string
	selectedRelease *SelectedRelease
	releaseMutex    sync.Mutex
}

func NewReleaseBackend(store afero.Fs, dirpath string) (*ReleaseBackend, error) {
	ok, err := afero.DirExists(store, dirpath)
	if err != nil {
		return nil, err
	}

	if !ok {
		finalErr := fmt.Errorf("%s: not a directory", dirpath)
		log.Error(finalErr)
		return nil, finalErr
	}

	return &ReleaseBackend{
		Store: store,
		path:  dirpath,
	}, nil
}

// ProcessDirectory parses the release manifest in the directory and
// selects it for serving. It is called again whenever the manifest
// file changes.
func (rb *ReleaseBackend) ProcessDirectory() error {
	manifestPath := path.Join(rb.path, ManifestFilename)

	data, err := afero.ReadFile(rb.Store, manifestPath)
	if err != nil {
		return err
	}

	m, err := manifest.NewManifest(bytes.NewReader(data))
	if err != nil {
		finalErr := fmt.Errorf("invalid release manifest: %s", err)
		log.Error(finalErr)
		return finalErr
	}

	if err = m.Validate(); err != nil {
		finalErr := fmt.Errorf("invalid release manifest: %s", err)
		log.Error(finalErr)
		return finalErr
	}

	rb.releaseMutex.Lock()
	rb.selectedRelease = &SelectedRelease{manifest: m, rawManifest: data}
	rb.releaseMutex.Unlock()

	log.Info("selected release version: ", m.Version)
	log.Debug("release manifest loaded: \n", string(data))

	return nil
}

func (rb *ReleaseBackend) release() *SelectedRelease {
	rb.releaseMutex.Lock()
	defer rb.releaseMutex.Unlock()

	return rb.selectedRelease
}

func (rb *ReleaseBackend) Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/latest.json", Handle: rb.getManifest},
		{Method: "GET", Path: "/firmware/:name", Handle: rb.getFirmware},
	}
}

func (rb *ReleaseBackend) getManifest(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	release := rb.release()

	if release == nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 page not found\n"))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(release.rawManifest); err != nil {
		log.Warn(err)
	}
}

func (rb *ReleaseBackend) getFirmware(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	// path.Base keeps requests from escaping the release directory
	fileName := path.Base(p.ByName("name"))
	filePath := path.Join(rb.path, fileName)

	f, err := rb.Store.Open(filePath)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("404 page not found\n"))
		return
	}

	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintf(w, "500 internal server error\n")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(stat.Size(), 10))

	if _, err = io.Copy(w, f); err != nil {
		log.Warn(err)
	}
}
