/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"github.com/OSSystems/pkg/log"
	"github.com/pkg/errors"
)

// UpdatingState is the State interface implementation for the
// AgentStateUpdating. It wraps the session's download-and-flash loop;
// Cancel maps to the session's cooperative abort.
type UpdatingState struct {
	BaseState
	CancellableState

	session *UpdateSession
	url     string
}

// ID returns the state id
func (state *UpdatingState) ID() AgentState {
	return state.id
}

// Cancel requests a cooperative abort of the running install
func (state *UpdatingState) Cancel(ok bool, nextState State) bool {
	state.session.AbortUpdate()
	return state.CancellableState.Cancel(ok, nextState)
}

// Handle for UpdatingState downloads and flashes the firmware image.
// On success the session has already requested a restart, so the
// machine only transitions to rebooting.
func (state *UpdatingState) Handle(a *Agent) (State, bool) {
	if a.Controller.InstallUpdate(state.url) {
		return NewRebootingState(), false
	}

	if state.session.LastError() == UpdateAborted {
		log.Info("firmware update aborted")

		if next := state.NextState(); next != nil {
			return next, true
		}

		return NewIdleState(), false
	}

	return NewErrorState(NewTransientError(errors.New(state.session.LastErrorString()))), false
}

// ToMap is for the State interface implementation
func (state *UpdatingState) ToMap() map[string]interface{} {
	bytesRead, totalBytes, percent, _ := state.session.Progress()

	m := state.BaseState.ToMap()
	m["progress"] = percent
	m["bytes-read"] = bytesRead
	m["total-bytes"] = totalBytes

	return m
}

// NewUpdatingState creates a new UpdatingState installing from url
func NewUpdatingState(session *UpdateSession, url string) *UpdatingState {
	return &UpdatingState{
		BaseState:        BaseState{id: AgentStateUpdating},
		CancellableState: CancellableState{cancel: make(chan bool, 1)},
		session:          session,
		url:              url,
	}
}
