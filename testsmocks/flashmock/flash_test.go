/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flashmock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlashWriterMock(t *testing.T) {
	expectedErr := fmt.Errorf("custom error")

	fwm := &FlashWriterMock{}
	fwm.On("Begin", int64(1024)).Return(nil)
	fwm.On("Write", []byte("data")).Return(4, nil)
	fwm.On("End").Return(expectedErr)
	fwm.On("IsFinished").Return(false)
	fwm.On("Abort").Return(nil)

	assert.NoError(t, fwm.Begin(1024))

	n, err := fwm.Write([]byte("data"))
	assert.Equal(t, 4, n)
	assert.NoError(t, err)

	assert.Equal(t, expectedErr, fwm.End())
	assert.False(t, fwm.IsFinished())
	assert.NoError(t, fwm.Abort())

	fwm.AssertExpectations(t)
}
