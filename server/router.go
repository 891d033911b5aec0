/*
 * otaup
 * Copyright (C) 2017
 * O.S. Systems Sofware LTDA: contato@ossystems.com.br
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package server

import (
	"github.com/julienschmidt/httprouter"
)

type BackendRouter struct {
	backend    Backend
	HTTPRouter *httprouter.Router
}

func NewBackendRouter(b Backend) *BackendRouter {
	router := httprouter.New()

	for _, route := range b.Routes() {
		router.Handle(route.Method, route.Path, route.Handle)
	}

	return &BackendRouter{
		backend:    b,
		HTTPRouter: router,
	}
}
