/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"path"

	"github.com/OSSystems/pkg/log"
	"github.com/fsnotify/fsnotify"
)

// Daemon watches a release directory and reprocesses it whenever the
// manifest file is rewritten, so a newly published release is served
// without restarting the server
type Daemon struct {
	fswatcher       *fsnotify.Watcher
	backend         *ReleaseBackend
	done            chan bool
	started         chan bool
	manifestWritten chan bool
	watchedDir      string
}

func NewDaemon(rb *ReleaseBackend, dirpath string) (*Daemon, error) {
	d := &Daemon{
		backend:         rb,
		done:            make(chan bool),
		started:         make(chan bool),
		manifestWritten: make(chan bool, 1),
		watchedDir:      dirpath,
	}

	fswatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err = fswatcher.Add(d.watchedDir); err != nil {
		return nil, err
	}

	d.fswatcher = fswatcher

	return d, nil
}

func (d *Daemon) Run() {
	go func() {
		for {
			select {
			case event := <-d.fswatcher.Events:
				switch event.Op {
				case fsnotify.Remove:
					if event.Name == d.watchedDir {
						d.done <- true
					}
				case fsnotify.Write, fsnotify.Create:
					manifestFileName := path.Join(d.watchedDir, ManifestFilename)
					if event.Name == manifestFileName {
						err := d.backend.ProcessDirectory()
						if err != nil {
							log.Error(err)
						}

						// a single save can raise both a create and a
						// write event, observers only need one signal
						select {
						case d.manifestWritten <- true:
						default:
						}
					}
				}
			case err := <-d.fswatcher.Errors:
				log.Error(err)
			}
		}
	}()

	d.started <- true
	<-d.done
}
