package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialjobs/workmatch/internal/domain/contract"
	"github.com/socialjobs/workmatch/internal/domain/entity"
)

const listKeyPrefix = "jobs:list:"

// JobCacheStore caches job documents and job board pages in redis. Hire
// counts are never cached.
type JobCacheStore struct {
	rdb       *redis.Client
	detailTTL time.Duration
	listTTL   time.Duration
}

var _ contract.IJobCache = (*JobCacheStore)(nil)

func NewJobCacheStore(rdb *redis.Client, ttl time.Duration) *JobCacheStore {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &JobCacheStore{
		rdb:       rdb,
		detailTTL: ttl,
		listTTL:   ttl,
	}
}

func jobDetailKey(jobID string) string { return fmt.Sprintf("job:%s", jobID) }

func jobsListKey(key string) string { return listKeyPrefix + key }

func (c *JobCacheStore) GetJob(ctx context.Context, jobID string) (*entity.Job, bool, error) {
	var job entity.Job
	ok, err := c.getJSON(ctx, jobDetailKey(jobID), &job)
	if !ok {
		return nil, false, err
	}
	return &job, true, nil
}

func (c *JobCacheStore) SetJob(ctx context.Context, job *entity.Job) error {
	return c.setJSON(ctx, jobDetailKey(job.ID), job, c.detailTTL)
}

func (c *JobCacheStore) InvalidateJob(ctx context.Context, jobID string) error {
	return c.rdb.Del(ctx, jobDetailKey(jobID)).Err()
}

func (c *JobCacheStore) GetJobsPage(ctx context.Context, key string) (*contract.CachedJobsPage, bool, error) {
	var page contract.CachedJobsPage
	ok, err := c.getJSON(ctx, jobsListKey(key), &page)
	if !ok {
		return nil, false, err
	}
	return &page, true, nil
}

func (c *JobCacheStore) SetJobsPage(ctx context.Context, key string, page *contract.CachedJobsPage) error {
	return c.setJSON(ctx, jobsListKey(key), page, c.listTTL)
}

// InvalidateJobLists drops every cached board page. Pages are keyed by
// filter, so any job write can change any of them.
func (c *JobCacheStore) InvalidateJobLists(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, listKeyPrefix+"*", 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

// getJSON treats a miss and an undecodable entry the same way.
func (c *JobCacheStore) getJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *JobCacheStore) setJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}
