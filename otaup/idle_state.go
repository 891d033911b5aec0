/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

// IdleState is the State interface implementation for the AgentStateIdle
type IdleState struct {
	BaseState
	CancellableState
}

// ID returns the state id
func (state *IdleState) ID() AgentState {
	return state.id
}

// Cancel cancels a state if it is cancellable
func (state *IdleState) Cancel(ok bool, nextState State) bool {
	return state.CancellableState.Cancel(ok, nextState)
}

// Handle for IdleState starts the next poll cycle, or blocks until
// cancelled when polling is disabled
func (state *IdleState) Handle(a *Agent) (State, bool) {
	if !a.Settings.PollingEnabled {
		state.Wait()
		return state.NextState(), false
	}

	return NewPollState(a.Settings.PollingInterval), false
}

// NewIdleState creates a new IdleState
func NewIdleState() *IdleState {
	state := &IdleState{
		BaseState:        BaseState{id: AgentStateIdle},
		CancellableState: CancellableState{cancel: make(chan bool)},
	}

	return state
}
