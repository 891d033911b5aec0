/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIdleState(t *testing.T) {
	state := NewIdleState()

	assert.IsType(t, &IdleState{}, state)
	assert.Equal(t, AgentState(AgentStateIdle), state.ID())
}

func TestIdleStateStartsPolling(t *testing.T) {
	a := newTestAgent(newTestSession())
	a.Settings.PollingEnabled = true
	a.Settings.PollingInterval = time.Hour

	state := NewIdleState()

	nextState, cancelled := state.Handle(a)
	assert.False(t, cancelled)
	assert.IsType(t, &PollState{}, nextState)
}

func TestIdleStateWaitsWhenPollingIsDisabled(t *testing.T) {
	a := newTestAgent(newTestSession())
	a.Settings.PollingEnabled = false

	state := NewIdleState()

	type handleResult struct {
		nextState State
		cancelled bool
	}

	result := make(chan handleResult)

	go func() {
		nextState, cancelled := state.Handle(a)
		result <- handleResult{nextState, cancelled}
	}()

	// let Handle block on the cancel channel before firing the cancel
	time.Sleep(100 * time.Millisecond)
	state.Cancel(true, NewProbeState())

	r := <-result
	assert.False(t, r.cancelled)
	assert.IsType(t, &ProbeState{}, r.nextState)
}
