/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/OSSystems/pkg/log"

	"github.com/OSSystems/otaup/client"
	"github.com/OSSystems/otaup/manifest"
)

// CheckForUpdate fetches the release manifest and compares the
// published version against the running one. It returns true iff a
// strictly newer version is available; the manifest fields are then
// readable through RemoteVersion, FirmwareURL and ReleaseNotes. The
// fields are cleared at the start of every check, so after a failed
// fetch or parse they read empty and LastError tells the cause.
func (s *UpdateSession) CheckForUpdate() bool {
	s.resetOperation()
	s.clearManifestFields()

	if !client.SchemeAllowed(s.sourceURL) {
		s.setError(InvalidUrl, "https not supported in http-only build")
		return false
	}

	d, err := s.Fetcher.Fetch(s.sourceURL, s.timeout, s.validateCertificate)
	if err != nil {
		log.Error("manifest connection failed: ", err)
		s.setError(NetworkError, "failed to open manifest connection")
		return false
	}

	defer d.Body.Close()

	if d.StatusCode != http.StatusOK {
		s.setError(HttpError, fmt.Sprintf("manifest request failed with status %d", d.StatusCode))
		return false
	}

	m, err := manifest.NewManifest(d.Body)
	if err != nil {
		log.Error("manifest parse failed: ", err)
		s.setError(JsonParseError, "failed to parse manifest")
		return false
	}

	if err = m.Validate(); err != nil {
		s.setError(InvalidVersion, err.Error())
		return false
	}

	// The URL domain may legitimately diverge from the reported tag,
	// so a mismatch is only worth a warning.
	if !strings.Contains(m.URL, m.Version) {
		log.Warn(fmt.Sprintf("version '%s' not found in firmware URL '%s'", m.Version, m.URL))
	}

	s.setManifestFields(m.Version, m.URL, m.Notes)

	log.Info(fmt.Sprintf("current version: %s, remote version: %s", s.currentVersion, m.Version))

	if m.Notes != "" {
		log.Info("release notes: ", m.Notes)
	}

	if manifest.CompareVersions(m.Version, s.currentVersion) <= 0 {
		log.Info("no newer version available")
		s.setError(NoUpdateAvailable, "")
		return false
	}

	log.Info("new firmware version available")

	return true
}
