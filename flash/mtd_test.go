/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package flash

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/OSSystems/otaup/testsmocks/cmdlinemock"
)

func flashcpCmdline(target string) interface{} {
	return mock.MatchedBy(func(cmdline string) bool {
		return strings.HasPrefix(cmdline, "flashcp ") && strings.HasSuffix(cmdline, " "+target)
	})
}

func TestMtdWriterCommit(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "flash_erase /dev/mtd1 0 0").Return([]byte(""), nil)
	clm.On("Execute", flashcpCmdline("/dev/mtd1")).Return([]byte(""), nil)

	fs := afero.NewMemMapFs()
	w := NewMtdWriter(fs, "/dev/mtd1")
	w.CmdLineExecuter = clm

	assert.NoError(t, w.Begin(8))

	n, err := w.Write([]byte("firmware"))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)

	assert.NoError(t, w.End())
	assert.True(t, w.IsFinished())

	clm.AssertExpectations(t)
}

func TestMtdWriterEndWithSizeMismatch(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}

	fs := afero.NewMemMapFs()
	w := NewMtdWriter(fs, "/dev/mtd1")
	w.CmdLineExecuter = clm

	assert.NoError(t, w.Begin(100))

	_, err := w.Write([]byte("firmware"))
	assert.NoError(t, err)

	assert.EqualError(t, w.End(), "spooled image has 8 bytes, expected 100")
	assert.False(t, w.IsFinished())

	// the device is never touched with an incomplete image
	clm.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestMtdWriterEndWithEraseFailure(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}
	clm.On("Execute", "flash_erase /dev/mtd1 0 0").Return([]byte(""), fmt.Errorf("erase failed"))

	fs := afero.NewMemMapFs()
	w := NewMtdWriter(fs, "/dev/mtd1")
	w.CmdLineExecuter = clm

	assert.NoError(t, w.Begin(SizeUnknown))

	_, err := w.Write([]byte("firmware"))
	assert.NoError(t, err)

	assert.EqualError(t, w.End(), "erase failed")
	assert.False(t, w.IsFinished())

	clm.AssertExpectations(t)
}

func TestMtdWriterAbortRemovesSpool(t *testing.T) {
	clm := &cmdlinemock.CmdLineExecuterMock{}

	fs := afero.NewMemMapFs()
	w := NewMtdWriter(fs, "/dev/mtd1")
	w.CmdLineExecuter = clm

	assert.NoError(t, w.Begin(SizeUnknown))

	_, err := w.Write([]byte("partial"))
	assert.NoError(t, err)

	spoolPath := w.spool.Name()

	assert.NoError(t, w.Abort())
	assert.False(t, w.IsFinished())

	exists, _ := afero.Exists(fs, spoolPath)
	assert.False(t, exists)

	clm.AssertNotCalled(t, "Execute", mock.Anything)
}

func TestMtdWriterAbortWithNoTransaction(t *testing.T) {
	w := NewMtdWriter(afero.NewMemMapFs(), "/dev/mtd1")

	assert.NoError(t, w.Abort())
}
