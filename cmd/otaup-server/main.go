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

	"github.com/OSSystems/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/OSSystems/otaup/server"
)

func main() {
	var listenAddress string
	var isQuiet bool
	var isDebug bool

	cmd := &cobra.Command{
		Use:   "otaup-server path",
		Short: "otaup Release Server",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osFs := afero.NewOsFs()

			if isQuiet {
				log.SetLevel(logrus.ErrorLevel)
			}

			if isDebug {
				log.SetLevel(logrus.DebugLevel)
			}

			backend, err := server.NewReleaseBackend(osFs, args[0])
			if err != nil {
				log.Fatal(err)
			}

			if err = backend.ProcessDirectory(); err != nil {
				log.Warn(err)
			}

			d, err := server.NewDaemon(backend, args[0])
			if err != nil {
				log.Fatal(err)
			}

			router := server.NewBackendRouter(backend)
			go func() {
				if err := http.ListenAndServe(listenAddress, router.HTTPRouter); err != nil {
					log.Fatal(err)
				}
			}()

			d.Run()
		},
	}

	cmd.PersistentFlags().StringVarP(&listenAddress, "listen", "l", ":8088", "Address to listen for firmware requests")
	cmd.PersistentFlags().BoolVarP(&isQuiet, "quiet", "q", false, "Run in quiet mode")
	cmd.PersistentFlags().BoolVarP(&isDebug, "debug", "d", false, "Run in debug mode")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
