/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package manifest

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Manifest describes the latest firmware release published for a
// device. It is the body of the "latest.json" file the update checker
// fetches from the release server.
type Manifest struct {
	Version string `json:"version"`
	URL     string `json:"url"`
	Notes   string `json:"notes"`
}

// NewManifest decodes a manifest directly from a stream. The body is
// never buffered as a whole. Missing keys are left empty.
func NewManifest(rd io.Reader) (*Manifest, error) {
	m := &Manifest{}

	if err := json.NewDecoder(rd).Decode(m); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks the required manifest fields. "version" and "url"
// must be present and "version" must look like a dotted version
// string. "notes" is optional.
func (m *Manifest) Validate() error {
	if m.Version == "" || m.URL == "" {
		return errors.New("manifest is missing version or URL")
	}

	if !strings.Contains(m.Version, ".") {
		return errors.New("invalid version format")
	}

	return nil
}
