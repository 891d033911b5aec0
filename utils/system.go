/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package utils

import "github.com/OSSystems/pkg/log"

type Rebooter interface {
	Reboot() error
}

type RebooterImpl struct {
}

func (r *RebooterImpl) Reboot() error {
	log.Info("rebooting the device")

	c := &CmdLine{}

	_, err := c.Execute("/sbin/reboot")

	return err
}
