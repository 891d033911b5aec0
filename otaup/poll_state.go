/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"fmt"
	"time"

	"github.com/OSSystems/pkg/log"
)

// PollState is the State interface implementation for the AgentStatePoll
type PollState struct {
	BaseState
	CancellableState

	interval   time.Duration
	ticksCount int64
}

// ID returns the state id
func (state *PollState) ID() AgentState {
	return state.id
}

// Cancel cancels a state if it is cancellable
func (state *PollState) Cancel(ok bool, nextState State) bool {
	return state.CancellableState.Cancel(ok, nextState)
}

// Handle for PollState ticks until the polling interval elapses, then
// moves on to probing the manifest. A cancel transitions immediately.
func (state *PollState) Handle(a *Agent) (State, bool) {
	if !a.Settings.PollingEnabled {
		state.Wait()
		return state.NextState(), false
	}

	if state.interval < a.TimeStep {
		log.Warn(fmt.Sprintf("polling interval (%s) must be greater than '%s', using '%s' instead", state.interval, a.TimeStep, a.TimeStep))
		state.interval = a.TimeStep
	}

	ticker := time.NewTicker(a.TimeStep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			state.ticksCount++

			if state.ticksCount >= int64(state.interval/a.TimeStep) {
				return NewProbeState(), false
			}
		case <-state.cancel:
			return state.NextState(), true
		}
	}
}

// NewPollState creates a new PollState
func NewPollState(pollingInterval time.Duration) *PollState {
	state := &PollState{
		BaseState:        BaseState{id: AgentStatePoll},
		CancellableState: CancellableState{cancel: make(chan bool, 1)},
	}

	state.interval = pollingInterval

	return state
}
