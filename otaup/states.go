/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

// AgentState holds the possible states for the agent
type AgentState int

const (
	// AgentDummyState is a dummy state
	AgentDummyState = iota
	// AgentStateIdle is set when the agent is in the "idle" mode
	AgentStateIdle
	// AgentStatePoll is set when the agent is waiting for the next
	// manifest poll
	AgentStatePoll
	// AgentStateProbe is set when the agent is checking the manifest
	// for a newer firmware version
	AgentStateProbe
	// AgentStateUpdating is set while the agent downloads and flashes
	// a firmware image
	AgentStateUpdating
	// AgentStateRebooting is set when a restart has been requested
	// after a successful update
	AgentStateRebooting
	// AgentStateExit is set when the daemon is about to quit
	AgentStateExit
	// AgentStateError is set when an error occurred on the agent
	AgentStateError
)

var statusNames = map[AgentState]string{
	AgentDummyState:     "dummy",
	AgentStateIdle:      "idle",
	AgentStatePoll:      "poll",
	AgentStateProbe:     "probe",
	AgentStateUpdating:  "updating",
	AgentStateRebooting: "rebooting",
	AgentStateExit:      "exit",
	AgentStateError:     "error",
}

// BaseState is the state from which all others must do composition
type BaseState struct {
	id AgentState
}

// ID returns the state id
func (b *BaseState) ID() AgentState {
	return b.id
}

// Cancel cancels a state if it is cancellable
func (b *BaseState) Cancel(ok bool, nextState State) bool {
	return ok
}

// ToMap is for the State interface implementation
func (b *BaseState) ToMap() map[string]interface{} {
	m := map[string]interface{}{}
	m["status"] = StateToString(b.ID())
	return m
}

// State interface describes the necessary operations for a State
type State interface {
	ID() AgentState
	Handle(*Agent) (State, bool) // Handle implements the behavior when the State is set
	Cancel(bool, State) bool
	ToMap() map[string]interface{}
}

// StateToString converts an "AgentState" to string
func StateToString(status AgentState) string {
	return statusNames[status]
}
