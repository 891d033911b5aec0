/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package fetchermock

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/OSSystems/otaup/client"
)

type FetcherMock struct {
	mock.Mock
}

func (fm *FetcherMock) Fetch(url string, timeout time.Duration, validateCertificate bool) (*client.Download, error) {
	args := fm.Called(url, timeout, validateCertificate)

	d := args.Get(0)
	if d == nil {
		return nil, args.Error(1)
	}

	return d.(*client.Download), args.Error(1)
}
