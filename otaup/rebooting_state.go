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
)

// RebootingState is the State interface implementation for the
// AgentStateRebooting. The restart was already requested by the
// session's success path, so the machine just winds down.
type RebootingState struct {
	BaseState
}

// Handle for RebootingState
func (state *RebootingState) Handle(a *Agent) (State, bool) {
	log.Info("waiting for system restart")

	return NewExitState(0), false
}

// NewRebootingState creates a new RebootingState
func NewRebootingState() *RebootingState {
	return &RebootingState{
		BaseState: BaseState{id: AgentStateRebooting},
	}
}
