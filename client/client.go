/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package client

import (
	"io"
	"net/http"
	"strings"
	"time"
)

// Download is one streaming GET response. The caller owns Body and
// must close it on every path.
type Download struct {
	Body          io.ReadCloser
	StatusCode    int
	ContentLength int64 // -1 when the server does not advertise one
}

// Fetcher opens streaming GET requests for manifests and firmware
// images. An error is returned only when no connection could be
// established; a response with a non-success status is returned as a
// Download so the caller can inspect the status code.
type Fetcher interface {
	Fetch(url string, timeout time.Duration, validateCertificate bool) (*Download, error)
}

// FirmwareClient is the production Fetcher. Every Fetch uses a fresh
// one-shot connection; keep-alive is disabled since an update is a
// single long transfer and reconnecting from a clean state is more
// robust than reusing a possibly stale connection. Redirects are
// followed, release servers commonly point through a redirecting URL.
type FirmwareClient struct {
}

func NewFirmwareClient() *FirmwareClient {
	return &FirmwareClient{}
}

func (c *FirmwareClient) Fetch(url string, timeout time.Duration, validateCertificate bool) (*Download, error) {
	httpClient := &http.Client{
		Transport: newTransport(timeout, validateCertificate),
	}

	res, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}

	return &Download{
		Body:          res.Body,
		StatusCode:    res.StatusCode,
		ContentLength: res.ContentLength,
	}, nil
}

// SchemeAllowed tells whether the URL scheme is supported by this
// build. Plain HTTP is always supported; HTTPS is rejected by the
// "httponly" build.
func SchemeAllowed(url string) bool {
	if strings.HasPrefix(url, "http://") {
		return true
	}

	return strings.HasPrefix(url, "https://") && !HTTPOnly
}
