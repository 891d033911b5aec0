/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type TestBackend struct {
}

func (tb *TestBackend) Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/test", Handle: tb.test},
	}
}

func (tb *TestBackend) test(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	fmt.Fprintf(w, "test body")
}

func TestNewBackendRouter(t *testing.T) {
	router := NewBackendRouter(&TestBackend{})

	server := httptest.NewServer(router.HTTPRouter)
	defer server.Close()

	res, err := http.Get(server.URL + "/test")
	assert.NoError(t, err)

	body, err := ioutil.ReadAll(res.Body)
	assert.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "test body", string(body))
}

func TestNewBackendRouterWithUnknownRoute(t *testing.T) {
	router := NewBackendRouter(&TestBackend{})

	server := httptest.NewServer(router.HTTPRouter)
	defer server.Close()

	res, err := http.Get(server.URL + "/nonexistent")
	assert.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
