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

// ProbeState is the State interface implementation for the AgentStateProbe
type ProbeState struct {
	BaseState
}

// Handle for ProbeState checks the manifest for a newer firmware
// version and proceeds to install it if there is one. It goes back to
// idle otherwise.
func (state *ProbeState) Handle(a *Agent) (State, bool) {
	if a.Controller.ProbeUpdate() {
		log.Info("new firmware version available: ", a.Session.RemoteVersion())
		return NewUpdatingState(a.Session, a.Session.FirmwareURL()), false
	}

	switch a.Session.LastError() {
	case NoError, NoUpdateAvailable:
		return NewIdleState(), false
	}

	return NewErrorState(NewTransientError(errors.New(a.Session.LastErrorString()))), false
}

// NewProbeState creates a new ProbeState
func NewProbeState() *ProbeState {
	return &ProbeState{
		BaseState: BaseState{id: AgentStateProbe},
	}
}
