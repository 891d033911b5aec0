/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

//go:build httponly

package client

import (
	"net"
	"net/http"
	"time"
)

// HTTPOnly reports whether this build was compiled without TLS
// support (the "httponly" build tag)
const HTTPOnly = true

func newTransport(timeout time.Duration, validateCertificate bool) *http.Transport {
	return &http.Transport{
		DisableKeepAlives: true,
		DialContext: (&net.Dialer{
			Timeout: timeout,
		}).DialContext,
		ResponseHeaderTimeout: timeout,
	}
}
