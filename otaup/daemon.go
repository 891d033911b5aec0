/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

type Daemon struct {
	agent *Agent
	stop  bool
}

func NewDaemon(agent *Agent) *Daemon {
	return &Daemon{
		agent: agent,
	}
}

func (d *Daemon) Stop() {
	d.stop = true
}

func (d *Daemon) Run() int {
	for {
		nextState := d.agent.ProcessCurrentState()

		if d.stop || nextState.ID() == AgentStateExit {
			if finalState, _ := nextState.(*ExitState); finalState != nil {
				return finalState.exitCode
			}

			return 0
		}
	}
}
