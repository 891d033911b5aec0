/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

// ErrorCode identifies the failure cause of the last checker or
// installer operation. The values are ordinal and stable since they
// index the canned message table used by LastErrorString.
type ErrorCode int

const (
	// NoError means no error is currently recorded
	NoError ErrorCode = iota
	// NoUpdateAvailable is set when the manifest does not publish a
	// version newer than the running one
	NoUpdateAvailable
	// NetworkError is set when a connection could not be established
	NetworkError
	// HttpError is set when a request got a non-success HTTP status
	HttpError
	// JsonParseError is set when the manifest body could not be decoded
	JsonParseError
	// InvalidVersion is set when the manifest misses required fields or
	// carries a malformed version string
	InvalidVersion
	// DownloadFailed is set when fewer bytes arrived than announced
	DownloadFailed
	// FlashFailed is set when the flash-write transaction failed
	FlashFailed
	// InvalidUrl is set for empty or disallowed firmware URLs
	InvalidUrl
	// UpdateSizeError is set when the flash transaction could not be
	// initialized for the announced image size
	UpdateSizeError
	// UpdateAborted is set when the update was aborted by request
	UpdateAborted
)

var errorMessages = map[ErrorCode]string{
	NoError:           "No error",
	NoUpdateAvailable: "No update available",
	NetworkError:      "Network connection failed",
	HttpError:         "HTTP request failed",
	JsonParseError:    "Failed to parse JSON response",
	InvalidVersion:    "Invalid version string format",
	DownloadFailed:    "Firmware download failed",
	FlashFailed:       "Flash write operation failed",
	InvalidUrl:        "Invalid firmware URL",
	UpdateSizeError:   "Firmware size validation failed",
	UpdateAborted:     "Update was aborted",
}

// ErrorCodeToString converts an "ErrorCode" to its canned message
func ErrorCodeToString(code ErrorCode) string {
	if message, ok := errorMessages[code]; ok {
		return message
	}

	return "Unknown error"
}
