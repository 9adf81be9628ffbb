package queue

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"
	"posflow/internal/platform/config"
)

// Message is one webhook delivery waiting for a worker. The raw payload is the
// source of truth; workers re-derive everything else from it.
type Message struct {
	Provider   string          `json:"provider"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt int64           `json:"received_at"`
	Attempts   int             `json:"attempts"`
}

// Queue is a durable event queue over a Redis list. LPUSH on receipt, BRPOP in
// the workers; failed units of work are pushed back with attempts incremented.
type Queue struct {
	rdb         *redis.Client
	key         string
	deadLetter  string
	pollTimeout time.Duration
}

func New(cfg config.QueueConfig) (*Queue, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	return &Queue{
		rdb:         redis.NewClient(opt),
		key:         cfg.Key,
		deadLetter:  cfg.DeadLetter,
		pollTimeout: cfg.PollTimeout,
	}, nil
}

func (q *Queue) Enqueue(ctx context.Context, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, data).Err()
}

// Dequeue blocks up to the poll timeout. A nil message means the timeout
// elapsed with the queue empty.
func (q *Queue) Dequeue(ctx context.Context) (*Message, error) {
	res, err := q.rdb.BRPop(ctx, q.pollTimeout, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	// BRPop returns [key, value]
	var msg Message
	if err := json.Unmarshal([]byte(res[1]), &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Requeue redelivers a failed unit of work with the attempt count bumped.
func (q *Queue) Requeue(ctx context.Context, msg *Message) error {
	msg.Attempts++
	return q.Enqueue(ctx, msg)
}

// DeadLetter parks a message that exhausted its retry budget.
func (q *Queue) DeadLetter(ctx context.Context, msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.deadLetter, data).Err()
}

func (q *Queue) Ping(ctx context.Context) error {
	return q.rdb.Ping(ctx).Err()
}

func (q *Queue) Close() error {
	return q.rdb.Close()
}
