/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

import (
	"fmt"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"
)

type CmdLineExecuter interface {
	Execute(cmdline string) ([]byte, error)
}

type CmdLine struct {
}

// Execute runs a single command line and returns its combined output.
// A non-zero exit status is reported as an error carrying the output.
func (cl *CmdLine) Execute(cmdline string) ([]byte, error) {
	p := shellwords.NewParser()

	list, err := p.Parse(cmdline)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(list[0], list[1:]...)
	ret, err := cmd.CombinedOutput()

	if exitErr, ok := err.(*exec.ExitError); ok {
		if !exitErr.Success() {
			return ret, fmt.Errorf("failed to execute '%s': %s", cmdline, string(ret))
		}
	}

	return ret, err
}
