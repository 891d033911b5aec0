/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"errors"

	"github.com/OSSystems/pkg/log"
)

// ErrorState is the State interface implementation for the AgentStateError
type ErrorState struct {
	BaseState
	cause ErrorReporter
}

// Handle for ErrorState exits the daemon if the error is fatal or
// goes back to idle otherwise
func (state *ErrorState) Handle(a *Agent) (State, bool) {
	log.Warn(state.cause)

	if state.cause.IsFatal() {
		return NewExitState(1), false
	}

	return NewIdleState(), false
}

// ToMap is for the State interface implementation
func (state *ErrorState) ToMap() map[string]interface{} {
	m := state.BaseState.ToMap()
	m["error"] = state.cause.Error()
	return m
}

// NewErrorState creates a new ErrorState from an ErrorReporter
func NewErrorState(err ErrorReporter) State {
	if err == nil {
		err = NewFatalError(errors.New("generic error"))
	}

	return &ErrorState{
		BaseState: BaseState{id: AgentStateError},
		cause:     err,
	}
}
