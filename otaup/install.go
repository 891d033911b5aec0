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
	"io"
	"net/http"
	"time"

	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"

	"github.com/OSSystems/otaup/client"
	"github.com/OSSystems/otaup/flash"
	"github.com/OSSystems/otaup/utils"
)

const (
	// chunkSize is how many bytes are moved from the network stream
	// to the flash transaction per iteration
	chunkSize = 1024

	// maxFlashInitRetries bounds the flash transaction init loop.
	// Initialization may need a large contiguous region and can fail
	// under temporary allocation pressure, so it gets a few tries
	// with a settle delay in between.
	maxFlashInitRetries = 5
)

var errStreamStall = errors.New("timed out waiting for stream data")

type attemptResult int

const (
	// attemptFailed is a retryable failure, the next attempt restarts
	// the whole connect/begin/read cycle from zero bytes
	attemptFailed attemptResult = iota
	// attemptFatal stops the whole operation immediately, retrying
	// cannot fix it
	attemptFatal
	// attemptAborted means cancellation was requested, it overrides
	// any remaining retries
	attemptAborted
	attemptSucceeded
)

// PerformUpdate checks for a newer firmware version and, if one is
// available, downloads and installs it. On success the device
// restarts and the call does not return to the caller's control flow.
func (s *UpdateSession) PerformUpdate() bool {
	if !s.CheckForUpdate() {
		return false
	}

	return s.performFirmwareUpdate(s.FirmwareURL())
}

// DownloadAndInstall downloads and installs firmware from an explicit
// URL, bypassing the manifest check
func (s *UpdateSession) DownloadAndInstall(url string) bool {
	if url == "" {
		s.setError(InvalidUrl, "firmware URL is empty")
		return false
	}

	return s.performFirmwareUpdate(url)
}

func (s *UpdateSession) performFirmwareUpdate(url string) bool {
	if url == "" {
		s.setError(InvalidUrl, "firmware URL is empty")
		return false
	}

	if !client.SchemeAllowed(url) {
		s.setError(InvalidUrl, "https not supported in http-only build")
		return false
	}

	s.resetOperation()

	log.Info("starting firmware update from: ", url)

	attempts := s.retryCount + 1
	success := false

	for attempt := 0; attempt < attempts && !success && !s.aborted(); attempt++ {
		if attempt > 0 {
			log.Warn(fmt.Sprintf("retrying firmware update (attempt %d/%d)", attempt, s.retryCount))
			time.Sleep(s.retryInterval)
		}

		switch s.attemptFirmwareUpdate(url) {
		case attemptSucceeded:
			success = true
		case attemptFatal, attemptAborted:
			// cleanup already happened inside the attempt
			return false
		case attemptFailed:
		}
	}

	if !success {
		s.clearOperationState()
		return false
	}

	// The session stays "updating" from here on, the device is
	// conceptually installing until it restarts. The pause gives any
	// observer polling progress a chance to see the final state.
	log.Info("firmware update successful, restarting")
	time.Sleep(s.rebootDelay)

	if err := s.Rebooter.Reboot(); err != nil {
		log.Error("restart request failed: ", err)
	}

	return true
}

// attemptFirmwareUpdate runs one full connect-begin-copy-finalize
// cycle. Every exit path leaves the flash transaction ended or
// aborted and the connection released.
func (s *UpdateSession) attemptFirmwareUpdate(url string) attemptResult {
	s.setUpdating(true)

	d, err := s.Fetcher.Fetch(url, s.timeout, s.validateCertificate)
	if err != nil {
		log.Error("firmware connection failed: ", err)
		s.setError(NetworkError, "failed to open firmware connection")
		return attemptFailed
	}

	if d.StatusCode != http.StatusOK {
		s.setError(HttpError, fmt.Sprintf("firmware request failed with status %d", d.StatusCode))
		s.releaseAttempt(d.Body, true)
		return attemptFailed
	}

	contentLength := d.ContentLength
	sizeKnown := contentLength > 0

	expectedSize := int64(0)
	if sizeKnown {
		log.Info("firmware size: ", contentLength, " bytes")
		expectedSize = contentLength
	} else {
		log.Info("firmware size unknown (no content length)")
	}

	s.resetProgress(expectedSize)
	s.reportProgress(0, expectedSize)

	if !s.beginFlash(sizeKnown, contentLength) {
		s.setError(UpdateSizeError, "flash transaction initialization failed")
		d.Body.Close()
		return attemptFailed
	}

	totalRead, fatal := s.copyToFlash(d.Body, contentLength, sizeKnown)
	if fatal {
		return attemptFatal
	}

	s.completeProgress(totalRead)
	s.reportProgress(totalRead, expectedSize)

	if s.aborted() {
		s.setError(UpdateAborted, "update aborted by request")
		s.releaseAttempt(d.Body, true)
		s.clearOperationState()
		return attemptAborted
	}

	if sizeKnown && totalRead != contentLength {
		s.setError(DownloadFailed, fmt.Sprintf("read %d of %d bytes", totalRead, contentLength))
		s.releaseAttempt(d.Body, true)
		s.clearOperationState()
		return attemptFailed
	}

	if err = s.Flash.End(); err != nil {
		log.Error("flash transaction finalize failed: ", err)
		s.setError(FlashFailed, "flash transaction finalize failed")
		s.releaseAttempt(d.Body, true)
		s.clearOperationState()
		return attemptFailed
	}

	d.Body.Close()

	if !s.Flash.IsFinished() {
		s.setError(FlashFailed, "flash transaction not finished")
		return attemptFailed
	}

	return attemptSucceeded
}

// beginFlash initializes the flash-write transaction, retrying a few
// times under allocation pressure
func (s *UpdateSession) beginFlash(sizeKnown bool, contentLength int64) bool {
	size := flash.SizeUnknown
	if sizeKnown {
		size = contentLength
	}

	for try := 0; try < maxFlashInitRetries; try++ {
		if try > 0 {
			time.Sleep(s.settleInterval)
		}

		err := s.Flash.Begin(size)
		if err == nil {
			return true
		}

		log.Warn(fmt.Sprintf("flash transaction init failed (attempt %d/%d): %v", try+1, maxFlashInitRetries, err))
	}

	return false
}

// copyToFlash pumps the firmware stream into the open flash
// transaction in fixed-size chunks, tracking progress and honoring
// the abort flag at chunk granularity. A short flash write is fatal
// for the whole operation: the transaction's offset bookkeeping
// cannot be rewound, so it tears everything down and reports
// fatal=true with the error state already recorded.
func (s *UpdateSession) copyToFlash(body io.ReadCloser, contentLength int64, sizeKnown bool) (totalRead int64, fatal bool) {
	buf := make([]byte, chunkSize)

	for !s.aborted() {
		n, err := s.readChunk(body, buf)

		if n > 0 {
			written, werr := s.Flash.Write(buf[:n])
			if werr != nil || written != n {
				if werr != nil {
					log.Error("flash write failed: ", werr)
				} else {
					log.Error(fmt.Sprintf("short flash write: %d of %d bytes", written, n))
				}

				s.setError(FlashFailed, "flash write failed")
				s.releaseAttempt(body, true)
				s.clearOperationState()

				return totalRead, true
			}

			totalRead += int64(n)

			s.trackProgress(totalRead, sizeKnown)
			s.reportProgress(totalRead, contentLengthOrZero(contentLength, sizeKnown))

			if s.responsivenessCallback != nil {
				s.responsivenessCallback()
			}

			if sizeKnown && totalRead >= contentLength {
				break
			}
		}

		if err != nil {
			if err != io.EOF {
				log.Error("stream read failed: ", err)
			}

			break
		}
	}

	return totalRead, false
}

// readChunk reads up to len(buf) bytes, failing the read when the
// stream stalls longer than the configured timeout. The read itself
// blocks on its own goroutine so a stalled connection cannot hang the
// installer.
func (s *UpdateSession) readChunk(rd io.Reader, buf []byte) (int, error) {
	type readResult struct {
		n   int
		err error
	}

	result := make(chan readResult, 1)

	go func() {
		n, err := rd.Read(buf)
		result <- readResult{n, err}
	}()

	select {
	case r := <-result:
		return r.n, r.err
	case <-time.After(s.timeout):
		return 0, errStreamStall
	}
}

// releaseAttempt closes the network stream and, when abortFlash is
// set, discards any open flash transaction. Abort is safe to call
// with no transaction open.
func (s *UpdateSession) releaseAttempt(body io.ReadCloser, abortFlash bool) {
	errorList := []error{}

	if abortFlash {
		if err := s.Flash.Abort(); err != nil {
			errorList = append(errorList, err)
		}
	}

	if err := body.Close(); err != nil {
		errorList = append(errorList, err)
	}

	if err := utils.MergeErrorList(errorList); err != nil {
		log.Warn("attempt cleanup: ", err)
	}
}

func contentLengthOrZero(contentLength int64, sizeKnown bool) int64 {
	if sizeKnown {
		return contentLength
	}

	return 0
}
