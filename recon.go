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

package dukarecon

import (
	"go.opentelemetry.io/otel"

	"github.com/dukahq/dukarecon/cache"
	"github.com/dukahq/dukarecon/config"
	"github.com/dukahq/dukarecon/database"
)

var tracer = otel.Tracer("dukarecon")

// Recon represents the main struct for the DukaRecon application.
type Recon struct {
	queue      *Queue
	cache      cache.Cache
	datasource database.IDataSource
}

// NewRecon initializes a new instance of Recon with the provided database
// datasource. It fetches the configuration and initializes the cache and queue.
func NewRecon(db database.IDataSource) (*Recon, error) {
	configuration, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	newCache, err := cache.NewCache()
	if err != nil {
		return nil, err
	}
	newQueue := NewQueue(configuration)
	newRecon := &Recon{datasource: db, cache: newCache, queue: newQueue}
	return newRecon, nil
}
