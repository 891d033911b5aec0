/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

var serverAddress string

var rootCmd = &cobra.Command{
	Use:   "otaup-ctl",
	Short: "otaup Control Utility",
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&serverAddress, "server-address", "s", "localhost:8080", "Agent listen address")

	var updateURL string

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print general agent information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execShowCmd("GET", "/info")
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print the agent state and update progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execShowCmd("GET", "/status")
		},
	}

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe the release server for an update",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execShowCmd("POST", "/update/probe")
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Fire the update procedure",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execUpdateCmd(updateURL)
		},
	}

	abortCmd := &cobra.Command{
		Use:   "abort",
		Short: "Abort the running update",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execShowCmd("POST", "/update/abort")
		},
	}

	rebootCmd := &cobra.Command{
		Use:   "reboot",
		Short: "Reboot the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execShowCmd("POST", "/reboot")
		},
	}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "Print agent log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execLogsCmd()
		},
	}

	updateCmd.Flags().StringVarP(&updateURL, "url", "u", "", "Firmware URL, bypassing the manifest check")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(abortCmd)
	rootCmd.AddCommand(rebootCmd)
	rootCmd.AddCommand(logsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func execShowCmd(method string, path string) error {
	body, err := doRequest(method, path, nil)
	if err != nil {
		return err
	}

	var out interface{}
	if err = json.Unmarshal(body, &out); err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(out)
	fmt.Println(string(output))

	return nil
}

func execUpdateCmd(url string) error {
	var reqBody []byte

	if url != "" {
		reqBody, _ = json.Marshal(map[string]string{"url": url})
	}

	body, err := doRequest("POST", "/update", reqBody)
	if err != nil {
		return err
	}

	var out interface{}
	if err = json.Unmarshal(body, &out); err != nil {
		return err
	}

	output, _ := prettyjson.Marshal(out)
	fmt.Println(string(output))

	return nil
}

func execLogsCmd() error {
	body, err := doRequest("GET", "/log", nil)
	if err != nil {
		return err
	}

	var entries []interface{}
	if err = json.Unmarshal(body, &entries); err != nil {
		return err
	}

	for _, entry := range entries {
		output, _ := prettyjson.Marshal(entry)
		fmt.Println(string(output))
	}

	return nil
}

func doRequest(method string, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(method, buildURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	return ioutil.ReadAll(res.Body)
}

func buildURL(path string) string {
	return fmt.Sprintf("http://%s/%s", serverAddress, path[1:])
}
