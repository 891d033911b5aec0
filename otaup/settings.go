/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"io"
	"io/ioutil"
	"time"

	"github.com/go-ini/ini"
)

const (
	// SystemSettingsPath is where the agent's static configuration lives
	SystemSettingsPath = "/etc/otaup/otaup.conf"
	// RuntimeSettingsPath is where the poll schedule is persisted
	// across restarts, kept apart from the read-only system settings
	RuntimeSettingsPath = "/var/lib/otaup/runtime.conf"

	defaultPollingInterval = time.Hour
	defaultRequestTimeout  = 30 * time.Second
	defaultListenAddress   = "localhost:8080"
	defaultFlashBackend    = "file"
	defaultFlashTarget     = "/var/lib/otaup/firmware.bin"
)

type Settings struct {
	PollingSettings  `ini:"Polling" json:"polling"`
	UpdateSettings   `ini:"Update" json:"update"`
	NetworkSettings  `ini:"Network" json:"network"`
	FirmwareSettings `ini:"Firmware" json:"firmware"`
}

type PersistentSettings struct {
	PersistentPollingSettings `ini:"Polling"`
}

type PollingSettings struct {
	PollingInterval           time.Duration `ini:"Interval,omitempty" json:"interval,omitempty"`
	PollingEnabled            bool          `ini:"Enabled,omitempty" json:"enabled,omitempty"`
	PersistentPollingSettings `ini:"Polling"`
}

type PersistentPollingSettings struct {
	LastPoll  time.Time `ini:"LastPoll" json:"last-poll"`
	FirstPoll time.Time `ini:"FirstPoll" json:"first-poll"`
}

type UpdateSettings struct {
	RetryCount   int    `ini:"Retries" json:"retries"`
	FlashBackend string `ini:"FlashBackend" json:"flash-backend"`
	FlashTarget  string `ini:"FlashTarget" json:"flash-target"`
}

type NetworkSettings struct {
	ManifestURL         string        `ini:"ManifestUrl" json:"manifest-url"`
	RequestTimeout      time.Duration `ini:"RequestTimeout" json:"request-timeout"`
	ValidateCertificate bool          `ini:"ValidateCertificate" json:"validate-certificate"`
	ListenAddress       string        `ini:"ListenAddress" json:"listen-address"`
}

type FirmwareSettings struct {
	CurrentVersion string `ini:"CurrentVersion" json:"current-version"`
}

func init() {
	ini.PrettyFormat = false
}

func LoadSettings(r io.Reader) (*Settings, error) {
	cfg, err := ini.Load(ioutil.NopCloser(r))
	if err != nil || cfg == nil {
		return nil, err
	}

	s := DefaultSettings()

	err = cfg.MapTo(s)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// LoadRuntimeSettings overlays the persisted poll schedule onto s
func LoadRuntimeSettings(s *Settings, r io.Reader) error {
	cfg, err := ini.Load(ioutil.NopCloser(r))
	if err != nil {
		return err
	}

	ps := &PersistentSettings{}

	if err = cfg.MapTo(ps); err != nil {
		return err
	}

	s.PersistentPollingSettings = ps.PersistentPollingSettings

	return nil
}

// SaveSettings writes the persistent part of s. The static sections
// are never written back, the system settings file stays read-only.
func SaveSettings(s *Settings, w io.Writer) error {
	ps := &PersistentSettings{
		PersistentPollingSettings: s.PollingSettings.PersistentPollingSettings,
	}

	cfg := ini.Empty()

	err := ini.ReflectFrom(cfg, ps)
	if err != nil {
		return err
	}

	_, err = cfg.WriteTo(w)
	if err != nil {
		return err
	}

	return nil
}

func DefaultSettings() *Settings {
	return &Settings{
		PollingSettings: PollingSettings{
			PollingInterval: defaultPollingInterval,
			PollingEnabled:  true,
			PersistentPollingSettings: PersistentPollingSettings{
				LastPoll:  (time.Time{}).UTC(),
				FirstPoll: (time.Time{}).UTC(),
			},
		},

		UpdateSettings: UpdateSettings{
			RetryCount:   0,
			FlashBackend: defaultFlashBackend,
			FlashTarget:  defaultFlashTarget,
		},

		NetworkSettings: NetworkSettings{
			ManifestURL:         "",
			RequestTimeout:      defaultRequestTimeout,
			ValidateCertificate: false,
			ListenAddress:       defaultListenAddress,
		},

		FirmwareSettings: FirmwareSettings{
			CurrentVersion: "0.0.0",
		},
	}
}
