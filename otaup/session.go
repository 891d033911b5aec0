/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/OSSystems/pkg/log"

	"github.com/OSSystems/otaup/client"
	"github.com/OSSystems/otaup/flash"
	"github.com/OSSystems/otaup/utils"
)

// errorDetailCapacity bounds the free-text elaboration stored next to
// the error code. Longer messages are truncated, never reallocated.
const errorDetailCapacity = 64

// ProgressCallback is invoked from the copy loop on every chunk with
// the running totals. percent is 0 while totalBytes is unknown. It
// runs on the critical path of the transfer and must not block.
type ProgressCallback func(percent int, bytesRead, totalBytes int64)

// ResponsivenessCallback is invoked once per chunk so an embedded
// request server can keep servicing status polls during a long
// download. It must not block.
type ResponsivenessCallback func()

// UpdateSession drives the two phases of a firmware update for one
// device: checking the published manifest against the running version
// and streaming a newer image into the flash-write subsystem. One
// session is created at boot and reused for every check and install.
type UpdateSession struct {
	Fetcher  client.Fetcher
	Flash    flash.Writer
	Rebooter utils.Rebooter

	currentVersion string
	sourceURL      string

	remoteVersion string
	firmwareURL   string
	releaseNotes  string

	lastError       ErrorCode
	lastErrorDetail [errorDetailCapacity]byte
	lastErrorLen    int

	timeout             time.Duration
	retryCount          int
	validateCertificate bool

	progressCallback       ProgressCallback
	responsivenessCallback ResponsivenessCallback

	// injectable for tests
	retryInterval  time.Duration
	settleInterval time.Duration
	rebootDelay    time.Duration

	abortRequested int32

	updating   bool
	bytesRead  int64
	totalBytes int64
	percent    int

	// guards the error slot, the manifest fields and the progress
	// snapshot against readers on other goroutines (the local API
	// polls while the installer runs)
	statusMutex sync.Mutex
}

// NewUpdateSession creates a session for a device currently running
// currentVersion, checking sourceURL for the release manifest and
// committing images through fl. currentVersion and sourceURL are
// fixed for the session's lifetime.
func NewUpdateSession(currentVersion string, sourceURL string, fl flash.Writer) *UpdateSession {
	return &UpdateSession{
		Fetcher:  client.NewFirmwareClient(),
		Flash:    fl,
		Rebooter: &utils.RebooterImpl{},

		currentVersion: currentVersion,
		sourceURL:      sourceURL,

		timeout:    30 * time.Second,
		retryCount: 0,

		retryInterval:  time.Second,
		settleInterval: 200 * time.Millisecond,
		rebootDelay:    time.Second,
	}
}

// SetProgressCallback registers the progress notification hook. Pass
// nil to disable it.
func (s *UpdateSession) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// SetResponsivenessCallback registers the per-chunk responsiveness
// hook. Pass nil to disable it.
func (s *UpdateSession) SetResponsivenessCallback(cb ResponsivenessCallback) {
	s.responsivenessCallback = cb
}

// SetTimeout sets the transport timeout applied to every request
func (s *UpdateSession) SetTimeout(timeout time.Duration) {
	s.timeout = timeout
}

// SetRetryCount sets how many times a failed download is retried. The
// default is 0, a single attempt.
func (s *UpdateSession) SetRetryCount(count int) {
	s.retryCount = count
}

// SetCertificateValidation enables server certificate validation for
// HTTPS URLs. It has no effect on an HTTP-only build.
func (s *UpdateSession) SetCertificateValidation(validate bool) {
	s.validateCertificate = validate
}

// CurrentVersion returns the firmware version the session was created with
func (s *UpdateSession) CurrentVersion() string {
	return s.currentVersion
}

// RemoteVersion returns the version published by the last successful
// check, empty before any check
func (s *UpdateSession) RemoteVersion() string {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.remoteVersion
}

// ReleaseNotes returns the notes published by the last successful
// check, empty when the manifest carries none
func (s *UpdateSession) ReleaseNotes() string {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.releaseNotes
}

// FirmwareURL returns the firmware binary URL published by the last
// successful check
func (s *UpdateSession) FirmwareURL() string {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.firmwareURL
}

// LastError returns the error code recorded by the last operation
func (s *UpdateSession) LastError() ErrorCode {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.lastError
}

// LastErrorString returns the recorded detail message when one was
// set, or the canned message for the last error code otherwise.
func (s *UpdateSession) LastErrorString() string {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	if s.lastErrorLen > 0 {
		return string(s.lastErrorDetail[:s.lastErrorLen])
	}

	return ErrorCodeToString(s.lastError)
}

// AbortUpdate requests cooperative cancellation of the running
// install. The flag is observed at chunk granularity, the operation
// finishes the in-flight chunk before tearing down.
func (s *UpdateSession) AbortUpdate() {
	atomic.StoreInt32(&s.abortRequested, 1)
}

// IsUpdating tells whether the installer's network and flash loop is
// active
func (s *UpdateSession) IsUpdating() bool {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	return s.updating
}

// Progress returns the last progress snapshot. live is true while a
// download is actively updating the snapshot or has just completed at
// 100% with a known size.
func (s *UpdateSession) Progress() (bytesRead int64, totalBytes int64, percent int, live bool) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	if !s.updating && s.percent == 0 && s.bytesRead == 0 {
		return 0, 0, 0, false
	}

	live = s.updating || (s.percent >= 100 && s.totalBytes > 0)

	return s.bytesRead, s.totalBytes, s.percent, live
}

func (s *UpdateSession) aborted() bool {
	return atomic.LoadInt32(&s.abortRequested) == 1
}

// resetOperation brings the session to a clean slate before a checker
// or installer run starts
func (s *UpdateSession) resetOperation() {
	atomic.StoreInt32(&s.abortRequested, 0)

	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastError = NoError
	s.lastErrorLen = 0
}

func (s *UpdateSession) clearManifestFields() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.remoteVersion = ""
	s.firmwareURL = ""
	s.releaseNotes = ""
}

func (s *UpdateSession) setManifestFields(version, url, notes string) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.remoteVersion = version
	s.firmwareURL = url
	s.releaseNotes = notes
}

func (s *UpdateSession) setError(code ErrorCode, detail string) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.lastError = code
	s.lastErrorLen = copy(s.lastErrorDetail[:], detail)

	if detail != "" {
		log.Error("update error: ", detail)
	}
}

func (s *UpdateSession) setUpdating(updating bool) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.updating = updating
}

// resetProgress zeroes the snapshot at the start of an attempt.
// totalBytes is 0 when the size is unknown.
func (s *UpdateSession) resetProgress(totalBytes int64) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.bytesRead = 0
	s.totalBytes = totalBytes
	s.percent = 0
}

// trackProgress updates the snapshot with the cumulative byte count.
// The percentage is only touched when the size is known.
func (s *UpdateSession) trackProgress(bytesRead int64, sizeKnown bool) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.bytesRead = bytesRead

	if sizeKnown && s.totalBytes > 0 {
		s.percent = clampPercent(bytesRead, s.totalBytes)
	}
}

// completeProgress forces the snapshot to 100% once the copy loop has
// finished
func (s *UpdateSession) completeProgress(bytesRead int64) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.bytesRead = bytesRead
	s.percent = 100
}

// clearOperationState drops the updating flag and the progress
// snapshot. The flash transaction must already be ended or aborted
// when this is called.
func (s *UpdateSession) clearOperationState() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()

	s.updating = false
	s.bytesRead = 0
	s.totalBytes = 0
	s.percent = 0
}

// reportProgress pushes the running totals to the registered
// callback. totalBytes is 0 when the size is unknown.
func (s *UpdateSession) reportProgress(bytesRead, totalBytes int64) {
	percent := 0
	if totalBytes > 0 {
		percent = clampPercent(bytesRead, totalBytes)
	}

	if s.progressCallback != nil {
		s.progressCallback(percent, bytesRead, totalBytes)
	}
}

func clampPercent(bytesRead, totalBytes int64) int {
	percent := int(bytesRead * 100 / totalBytes)

	if percent < 0 {
		return 0
	}

	if percent > 100 {
		return 100
	}

	return percent
}
