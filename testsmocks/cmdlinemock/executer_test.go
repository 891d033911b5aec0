/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package cmdlinemock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	expectedErr := fmt.Errorf("custom error")

	clem := &CmdLineExecuterMock{}
	clem.On("Execute", "ls").Return([]byte("output"), expectedErr)

	out, err := clem.Execute("ls")

	assert.Equal(t, []byte("output"), out)
	assert.Equal(t, expectedErr, err)

	clem.AssertExpectations(t)
}
