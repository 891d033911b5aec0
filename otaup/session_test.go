/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestSession() *UpdateSession {
	s := NewUpdateSession("1.0.0", "http://localhost/latest.json", nil)

	// no real waiting in tests
	s.retryInterval = time.Millisecond
	s.settleInterval = time.Millisecond
	s.rebootDelay = time.Millisecond

	return s
}

func TestNewUpdateSession(t *testing.T) {
	s := NewUpdateSession("1.2.3", "http://localhost/latest.json", nil)

	assert.Equal(t, "1.2.3", s.CurrentVersion())
	assert.Equal(t, "http://localhost/latest.json", s.sourceURL)
	assert.Equal(t, 30*time.Second, s.timeout)
	assert.Equal(t, 0, s.retryCount)
	assert.False(t, s.validateCertificate)
	assert.NotNil(t, s.Fetcher)
	assert.NotNil(t, s.Rebooter)

	assert.Equal(t, NoError, s.LastError())
	assert.Equal(t, "", s.RemoteVersion())
	assert.Equal(t, "", s.FirmwareURL())
	assert.Equal(t, "", s.ReleaseNotes())
	assert.False(t, s.IsUpdating())
}

func TestSessionSetters(t *testing.T) {
	s := newTestSession()

	s.SetTimeout(5 * time.Second)
	assert.Equal(t, 5*time.Second, s.timeout)

	s.SetRetryCount(3)
	assert.Equal(t, 3, s.retryCount)

	s.SetCertificateValidation(true)
	assert.True(t, s.validateCertificate)
}

func TestLastErrorStringReturnsCannedMessage(t *testing.T) {
	s := newTestSession()

	s.setError(NetworkError, "")

	assert.Equal(t, NetworkError, s.LastError())
	assert.Equal(t, "Network connection failed", s.LastErrorString())
}

func TestLastErrorStringReturnsDetail(t *testing.T) {
	s := newTestSession()

	s.setError(HttpError, "firmware request failed with status 503")

	assert.Equal(t, HttpError, s.LastError())
	assert.Equal(t, "firmware request failed with status 503", s.LastErrorString())
}

func TestLastErrorStringTruncatesLongDetail(t *testing.T) {
	s := newTestSession()

	detail := strings.Repeat("x", 200)
	s.setError(FlashFailed, detail)

	assert.Equal(t, detail[:errorDetailCapacity], s.LastErrorString())
	assert.Equal(t, errorDetailCapacity, len(s.LastErrorString()))
}

func TestResetOperationClearsErrorAndAbort(t *testing.T) {
	s := newTestSession()

	s.setError(DownloadFailed, "read 10 of 20 bytes")
	s.AbortUpdate()

	s.resetOperation()

	assert.Equal(t, NoError, s.LastError())
	assert.Equal(t, "No error", s.LastErrorString())
	assert.False(t, s.aborted())
}

func TestAbortUpdateSetsFlag(t *testing.T) {
	s := newTestSession()

	assert.False(t, s.aborted())
	s.AbortUpdate()
	assert.True(t, s.aborted())
}

func TestProgressBeforeAnyOperation(t *testing.T) {
	s := newTestSession()

	bytesRead, totalBytes, percent, live := s.Progress()
	assert.Equal(t, int64(0), bytesRead)
	assert.Equal(t, int64(0), totalBytes)
	assert.Equal(t, 0, percent)
	assert.False(t, live)
}

func TestProgressWhileUpdating(t *testing.T) {
	s := newTestSession()

	s.setUpdating(true)
	s.resetProgress(1000)
	s.trackProgress(250, true)

	bytesRead, totalBytes, percent, live := s.Progress()
	assert.Equal(t, int64(250), bytesRead)
	assert.Equal(t, int64(1000), totalBytes)
	assert.Equal(t, 25, percent)
	assert.True(t, live)
}

func TestProgressUnknownSizeStaysAtZeroPercent(t *testing.T) {
	s := newTestSession()

	s.setUpdating(true)
	s.resetProgress(0)
	s.trackProgress(4096, false)

	bytesRead, totalBytes, percent, live := s.Progress()
	assert.Equal(t, int64(4096), bytesRead)
	assert.Equal(t, int64(0), totalBytes)
	assert.Equal(t, 0, percent)
	assert.True(t, live)
}

func TestProgressAfterCompletion(t *testing.T) {
	s := newTestSession()

	s.setUpdating(true)
	s.resetProgress(1000)
	s.trackProgress(1000, true)
	s.completeProgress(1000)
	s.setUpdating(false)

	// a finished download with a known size still reads live at 100%
	bytesRead, totalBytes, percent, live := s.Progress()
	assert.Equal(t, int64(1000), bytesRead)
	assert.Equal(t, int64(1000), totalBytes)
	assert.Equal(t, 100, percent)
	assert.True(t, live)
}

func TestProgressAfterClearOperationState(t *testing.T) {
	s := newTestSession()

	s.setUpdating(true)
	s.resetProgress(1000)
	s.trackProgress(500, true)
	s.clearOperationState()

	bytesRead, totalBytes, percent, live := s.Progress()
	assert.Equal(t, int64(0), bytesRead)
	assert.Equal(t, int64(0), totalBytes)
	assert.Equal(t, 0, percent)
	assert.False(t, live)
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0, clampPercent(0, 100))
	assert.Equal(t, 50, clampPercent(50, 100))
	assert.Equal(t, 100, clampPercent(100, 100))
	assert.Equal(t, 100, clampPercent(150, 100))
}

func TestProgressCallbackReceivesTotals(t *testing.T) {
	s := newTestSession()

	var gotPercent int
	var gotBytesRead, gotTotalBytes int64

	s.SetProgressCallback(func(percent int, bytesRead, totalBytes int64) {
		gotPercent = percent
		gotBytesRead = bytesRead
		gotTotalBytes = totalBytes
	})

	s.reportProgress(512, 2048)

	assert.Equal(t, 25, gotPercent)
	assert.Equal(t, int64(512), gotBytesRead)
	assert.Equal(t, int64(2048), gotTotalBytes)
}
