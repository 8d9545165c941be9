/*
Copyright 2025 DukaRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package api

import (
	"github.com/dukahq/dukarecon/config"

	"github.com/dukahq/dukarecon/api/middleware"

	"github.com/dukahq/dukarecon"
	"github.com/gin-gonic/gin"
)

type Api struct {
	recon  *dukarecon.Recon
	router *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.POST("/notifications", a.IngestNotification)

	router.POST("/payments", a.RecordPayment)
	router.GET("/payments/:id", a.GetPayment)

	router.POST("/expenses", a.RecordExpense)
	router.GET("/expenses", a.GetExpenses)

	router.GET("/ledger-entries/:id", a.GetLedgerEntry)
	router.PUT("/ledger-entries/:id/dismiss", a.DismissLedgerEntry)

	router.GET("/reconciliation", a.GetShiftReport)
	return a.router
}

func NewAPI(r *dukarecon.Recon) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	router := gin.Default()
	router.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		router.Use(middleware.SecretKeyAuthMiddleware())
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{recon: r, router: router}
}
