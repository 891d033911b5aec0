/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/OSSystems/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/OSSystems/otaup/flash"
	"github.com/OSSystems/otaup/otaup"
	"github.com/OSSystems/otaup/server"
)

var gitversion = "No version provided"

func main() {
	var settingsPath string

	cmd := &cobra.Command{
		Use: "otaup",
		Run: func(cmd *cobra.Command, args []string) {},
	}

	cmd.PersistentFlags().StringVarP(&settingsPath, "config", "c", otaup.SystemSettingsPath, "settings file path")
	isQuiet := cmd.PersistentFlags().Bool("quiet", false, "sets the log level to 'error'")
	isDebug := cmd.PersistentFlags().Bool("debug", false, "sets the log level to 'debug'")

	log.SetLevel(logrus.InfoLevel)

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	if *isQuiet {
		log.SetLevel(logrus.ErrorLevel)
	}

	if *isDebug {
		log.SetLevel(logrus.DebugLevel)
	}

	osFs := afero.NewOsFs()

	settings, err := loadSettings(osFs, settingsPath)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	if err = flash.CheckBackendRequirements(settings.FlashBackend); err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	writer, err := flash.NewWriter(settings.FlashBackend, osFs, settings.FlashTarget)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	session := otaup.NewUpdateSession(settings.CurrentVersion, settings.ManifestURL, writer)
	session.SetTimeout(settings.RequestTimeout)
	session.SetRetryCount(settings.RetryCount)
	session.SetCertificateValidation(settings.ValidateCertificate)

	agent := otaup.NewAgent(gitversion, settings, osFs, session)

	backend, err := server.NewAgentBackend(agent)
	if err != nil {
		log.Fatal(err)
		os.Exit(1)
	}

	go func() {
		router := server.NewBackendRouter(backend)
		if err := http.ListenAndServe(settings.ListenAddress, router.HTTPRouter); err != nil {
			log.Fatal(err)
		}
	}()

	agent.Start()

	d := otaup.NewDaemon(agent)

	os.Exit(d.Run())
}

func loadSettings(fs afero.Fs, settingsPath string) (*otaup.Settings, error) {
	exists, err := afero.Exists(fs, settingsPath)
	if err != nil {
		return nil, err
	}

	if !exists {
		log.Warn("settings file not found, using defaults: ", settingsPath)
		return otaup.LoadSettings(strings.NewReader(""))
	}

	f, err := fs.Open(settingsPath)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	settings, err := otaup.LoadSettings(f)
	if err != nil {
		return nil, err
	}

	rf, err := fs.Open(otaup.RuntimeSettingsPath)
	if err == nil {
		defer rf.Close()

		if err = otaup.LoadRuntimeSettings(settings, rf); err != nil {
			log.Warn("failed to load runtime settings: ", err)
		}
	}

	return settings, nil
}
