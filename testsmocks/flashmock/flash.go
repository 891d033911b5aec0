/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flashmock

import (
	"github.com/stretchr/testify/mock"
)

type FlashWriterMock struct {
	mock.Mock
}

func (fwm *FlashWriterMock) Begin(expectedSize int64) error {
	args := fwm.Called(expectedSize)
	return args.Error(0)
}

func (fwm *FlashWriterMock) Write(p []byte) (int, error) {
	args := fwm.Called(p)
	return args.Int(0), args.Error(1)
}

func (fwm *FlashWriterMock) End() error {
	args := fwm.Called()
	return args.Error(0)
}

func (fwm *FlashWriterMock) IsFinished() bool {
	args := fwm.Called()
	return args.Bool(0)
}

func (fwm *FlashWriterMock) Abort() error {
	args := fwm.Called()
	return args.Error(0)
}
