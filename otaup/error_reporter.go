/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package otaup

import "github.com/pkg/errors"

// ErrorReporter is the error type crossing state machine boundaries.
// Fatal errors terminate the daemon, transient ones send the agent
// back to idle.
type ErrorReporter interface {
	Cause() error
	IsFatal() bool
	error
}

type AgentError struct {
	cause error
	fatal bool
}

func (e *AgentError) Cause() error {
	return e.cause
}

func (e *AgentError) IsFatal() bool {
	return e.fatal
}

func (e *AgentError) Error() string {
	var err error

	if e.fatal {
		err = errors.Wrapf(e.cause, "fatal error")
	} else {
		err = errors.Wrapf(e.cause, "transient error")
	}

	return err.Error()
}

func NewFatalError(err error) ErrorReporter {
	return &AgentError{
		cause: err,
		fatal: true,
	}
}

func NewTransientError(err error) ErrorReporter {
	return &AgentError{
		cause: err,
		fatal: false,
	}
}
