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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log"
	"strings"
	"time"

	"github.com/dukahq/dukarecon/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// Queue represents a queue for handling incoming notification tasks.
type Queue struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
}

// NotificationPayload is one device-forwarded message riding the queue, as
// captured by the listener before any parsing happens.
type NotificationPayload struct {
	TenantID    string    `json:"tenant_id"`
	SubmitterID string    `json:"submitter_id"`
	Body        string    `json:"body"`
	SenderLabel string    `json:"sender_label"`
	ReceivedAt  time.Time `json:"received_at"`
}

// NewQueue initializes a new Queue instance with the provided configuration.
func NewQueue(conf *config.Configuration) *Queue {
	dns := conf.Redis.Dns
	if !strings.HasPrefix(dns, "redis://") && !strings.HasPrefix(dns, "rediss://") {
		dns = fmt.Sprintf("redis://%s", dns)
	}
	redisOption, err := redis.ParseURL(dns)
	if err != nil {
		log.Fatalf("Error parsing Redis URL: %v", err)
	}

	queueOptions := asynq.RedisClientOpt{Addr: redisOption.Addr, Password: redisOption.Password, DB: redisOption.DB, TLSConfig: redisOption.TLSConfig}
	client := asynq.NewClient(queueOptions)
	inspector := asynq.NewInspector(queueOptions)
	return &Queue{
		Client:    client,
		Inspector: inspector,
	}
}

// Enqueue pushes a raw notification onto the Redis queue. The task ID is
// derived from the tenant and message body, so the same message delivered
// twice by the OS listener collapses into a single task.
func (q *Queue) Enqueue(ctx context.Context, payload *NotificationPayload) error {
	ctx, span := tracer.Start(ctx, "Adding notification to Redis queue")
	defer span.End()

	cfg, err := config.Fetch()
	if err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	taskID := fmt.Sprintf("%s_%d", payload.TenantID, hashNotificationBody(payload.Body))
	taskOptions := []asynq.Option{
		asynq.TaskID(taskID),
		asynq.Queue(cfg.Queue.NotificationQueue),
		asynq.MaxRetry(cfg.Queue.MaxRetryAttempts),
	}
	task := asynq.NewTask(cfg.Queue.NotificationQueue, data, taskOptions...)

	info, err := q.Client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Printf(" [*] Duplicate notification dropped: %s", taskID)
			return nil
		}
		log.Println(err, info)
		return err
	}
	log.Printf(" [*] Successfully enqueued notification: %s", taskID)
	return nil
}

// hashNotificationBody returns a consistent hash value for a message body.
func hashNotificationBody(body string) int {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(body))
	return int(hasher.Sum32())
}
