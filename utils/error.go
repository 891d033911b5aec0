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
	"strings"
)

// MergeErrorList folds a list of errors into a single one. A nil is
// returned for an empty list and a single error is returned untouched.
func MergeErrorList(errorList []error) error {
	if len(errorList) == 0 {
		return nil
	}

	if len(errorList) == 1 {
		return errorList[0]
	}

	errorMessages := []string{}
	for _, err := range errorList {
		errorMessages = append(errorMessages, fmt.Sprintf("(%v)", err))
	}

	return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
}
