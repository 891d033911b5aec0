/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

//go:build !httponly

package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// HTTPOnly reports whether this build was compiled without TLS
// support (the "httponly" build tag)
const HTTPOnly = false

// The timeout bounds connection establishment, the TLS handshake and
// the wait for response headers. The body transfer itself is not
// bounded here, a stalled stream is detected by the installer.
func newTransport(timeout time.Duration, validateCertificate bool) *http.Transport {
	return &http.Transport{
		DisableKeepAlives: true,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: !validateCertificate,
		},
	}
}
