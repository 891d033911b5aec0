/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package controllermock

import (
	"github.com/stretchr/testify/mock"
)

type ControllerMock struct {
	mock.Mock
}

func (cm *ControllerMock) ProbeUpdate() bool {
	args := cm.Called()
	return args.Bool(0)
}

func (cm *ControllerMock) InstallUpdate(url string) bool {
	args := cm.Called(url)
	return args.Bool(0)
}
