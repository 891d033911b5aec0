/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import (
	"os"
	"sync"
	"time"

	"github.com/OSSystems/pkg/log"
	"github.com/spf13/afero"

	"github.com/OSSystems/otaup/utils"
)

// Controller is the operation surface the states drive. The agent
// implements it itself; tests substitute a mock.
type Controller interface {
	ProbeUpdate() bool
	InstallUpdate(url string) bool
}

// Agent owns the update session and runs the state machine around it:
// idle, poll, probe, updating, rebooting. The local control API talks
// to the running machine through Cancel and the session accessors.
type Agent struct {
	Controller
	utils.Rebooter

	Version  string
	Settings *Settings
	Store    afero.Fs
	Session  *UpdateSession
	TimeStep time.Duration

	RuntimeSettingsPath string

	state         State
	previousState State
	stateMutex    sync.Mutex
}

// NewAgent creates an agent driving session according to settings
func NewAgent(version string, settings *Settings, store afero.Fs, session *UpdateSession) *Agent {
	a := &Agent{
		Version:  version,
		Settings: settings,
		Store:    store,
		Session:  session,
		TimeStep: time.Minute,
		Rebooter: &utils.RebooterImpl{},

		RuntimeSettingsPath: RuntimeSettingsPath,

		state:         NewIdleState(),
		previousState: nil,
	}

	a.Controller = a

	return a
}

// ProbeUpdate is the Controller interface implementation, it runs the
// session's manifest check and records the poll time
func (a *Agent) ProbeUpdate() bool {
	ok := a.Session.CheckForUpdate()

	a.Settings.LastPoll = time.Now()

	if err := a.persistSettings(); err != nil {
		log.Warn("failed to persist runtime settings: ", err)
	}

	return ok
}

// InstallUpdate is the Controller interface implementation
func (a *Agent) InstallUpdate(url string) bool {
	return a.Session.DownloadAndInstall(url)
}

// GetState returns the machine's current state
func (a *Agent) GetState() State {
	return a.state
}

// SetState sets the machine's current state
func (a *Agent) SetState(state State) {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	a.state = state
}

// Cancel cancels the current state, transitioning to nextState
func (a *Agent) Cancel(nextState State) {
	a.state.Cancel(true, nextState)
}

// ProcessCurrentState handles the current state and advances the
// machine to the state it returns
func (a *Agent) ProcessCurrentState() State {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	a.previousState = a.state

	state, _ := a.state.Handle(a)

	a.state = state

	return a.state
}

// Start decides the machine's initial state from the persisted poll
// schedule: probe right away when a poll is overdue, otherwise wait
// out the remainder of the interval
func (a *Agent) Start() {
	a.stateMutex.Lock()
	defer a.stateMutex.Unlock()

	if !a.Settings.PollingEnabled {
		a.state = NewIdleState()
		return
	}

	now := time.Now()
	timeZero := (time.Time{}).UTC()

	if a.Settings.FirstPoll == timeZero {
		a.Settings.FirstPoll = now

		if err := a.persistSettings(); err != nil {
			log.Warn("failed to persist runtime settings: ", err)
		}

		a.state = NewProbeState()
		return
	}

	if a.Settings.LastPoll == timeZero || a.Settings.LastPoll.Add(a.Settings.PollingInterval).Before(now) {
		a.state = NewProbeState()
		return
	}

	nextPoll := a.Settings.LastPoll.Add(a.Settings.PollingInterval)

	log.Info("next poll is expected at: ", nextPoll)

	a.state = NewPollState(nextPoll.Sub(now))
}

func (a *Agent) persistSettings() error {
	f, err := a.Store.OpenFile(a.RuntimeSettingsPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	defer f.Close()

	return SaveSettings(a.Settings, f)
}
