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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewErrorState(t *testing.T) {
	state := NewErrorState(NewTransientError(fmt.Errorf("some error")))

	assert.IsType(t, &ErrorState{}, state)
	assert.Equal(t, AgentState(AgentStateError), state.ID())
}

func TestNewErrorStateWithNilCause(t *testing.T) {
	state := NewErrorState(nil)

	assert.IsType(t, &ErrorState{}, state)
	assert.True(t, state.(*ErrorState).cause.IsFatal())
	assert.Equal(t, "fatal error: generic error", state.(*ErrorState).cause.Error())
}

func TestErrorStateWithTransientError(t *testing.T) {
	a := newTestAgent(newTestSession())

	state := NewErrorState(NewTransientError(fmt.Errorf("some error")))

	nextState, cancelled := state.Handle(a)
	assert.False(t, cancelled)
	assert.IsType(t, &IdleState{}, nextState)
}

func TestErrorStateWithFatalError(t *testing.T) {
	a := newTestAgent(newTestSession())

	state := NewErrorState(NewFatalError(fmt.Errorf("some error")))

	nextState, cancelled := state.Handle(a)
	assert.False(t, cancelled)
	assert.IsType(t, &ExitState{}, nextState)
	assert.Equal(t, 1, nextState.(*ExitState).exitCode)
}

func TestErrorStateToMap(t *testing.T) {
	state := NewErrorState(NewTransientError(fmt.Errorf("some error")))

	expected := map[string]interface{}{
		"status": "error",
		"error":  "transient error: some error",
	}

	assert.Equal(t, expected, state.ToMap())
}
