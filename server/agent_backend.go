/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/OSSystems/pkg/log"
	"github.com/julienschmidt/httprouter"

	"github.com/OSSystems/otaup/otaup"
)

// AgentBackend exposes the running agent over the local control API
type AgentBackend struct {
	*otaup.Agent
}

func NewAgentBackend(a *otaup.Agent) (*AgentBackend, error) {
	return &AgentBackend{Agent: a}, nil
}

func (ab *AgentBackend) Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/info", Handle: ab.info},
		{Method: "GET", Path: "/status", Handle: ab.status},
		{Method: "POST", Path: "/update", Handle: ab.update},
		{Method: "POST", Path: "/update/probe", Handle: ab.updateProbe},
		{Method: "POST", Path: "/update/abort", Handle: ab.updateAbort},
		{Method: "POST", Path: "/reboot", Handle: ab.reboot},
		{Method: "GET", Path: "/log", Handle: ab.log},
	}
}

func (ab *AgentBackend) info(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := map[string]interface{}{}

	out["version"] = ab.Agent.Version
	out["config"] = ab.Agent.Settings
	out["current-version"] = ab.Agent.Session.CurrentVersion()

	writeJSON(w, http.StatusOK, out)
}

func (ab *AgentBackend) status(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	writeJSON(w, http.StatusOK, ab.Agent.GetState().ToMap())
}

func (ab *AgentBackend) update(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	defer r.Body.Close()

	var in struct {
		URL string `json:"url"`
	}

	// a missing or empty body means "probe first, then install"
	json.NewDecoder(r.Body).Decode(&in)

	go func() {
		var next otaup.State

		if in.URL != "" {
			next = otaup.NewUpdatingState(ab.Agent.Session, in.URL)
		} else {
			next = otaup.NewProbeState()
		}

		ab.Agent.Cancel(next)
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "request accepted, update procedure fired",
	})
}

func (ab *AgentBackend) updateProbe(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := map[string]interface{}{}

	available := ab.Agent.Controller.ProbeUpdate()

	out["update-available"] = available

	if available {
		out["remote-version"] = ab.Agent.Session.RemoteVersion()
		out["release-notes"] = ab.Agent.Session.ReleaseNotes()
	} else if code := ab.Agent.Session.LastError(); code != otaup.NoUpdateAvailable && code != otaup.NoError {
		out["error"] = ab.Agent.Session.LastErrorString()
	}

	writeJSON(w, http.StatusOK, out)
}

func (ab *AgentBackend) updateAbort(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if !ab.Agent.Session.IsUpdating() {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": "no update in progress",
		})
		return
	}

	ab.Agent.Session.AbortUpdate()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "request accepted, update will abort",
	})
}

func (ab *AgentBackend) reboot(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := ab.Agent.Reboot(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]interface{}{
		"message": "request accepted, rebooting",
	})
}

func (ab *AgentBackend) log(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	out := []map[string]interface{}{}

	for _, e := range log.AllEntries() {
		out = append(out, map[string]interface{}{
			"message": e.Message,
			"level":   string(e.Level.String()),
			"time":    string(e.Time.String()),
			"data":    e.Data,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, statusCode int, out interface{}) {
	outputJSON, _ := json.MarshalIndent(out, "", "    ")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	fmt.Fprint(w, string(outputJSON))
}
