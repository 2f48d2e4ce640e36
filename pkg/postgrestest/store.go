// Package postgrestest starts a disposable postgres container for repository tests
package postgrestest

import (
	"errors"
	"fmt"
	"time"

	"github.com/goto/siphon/internal/store"
	"github.com/goto/siphon/internal/store/postgres"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// ErrDockerUnavailable is returned when no docker daemon answers, callers usually skip
var ErrDockerUnavailable = errors.New("docker is not available")

// NewTestStore runs postgres in docker, waits until it accepts connections and applies migrations.
// The caller purges the returned resource with pool.Purge.
func NewTestStore() (*postgres.Store, *dockertest.Pool, *dockertest.Resource, error) {
	cfg := &store.Config{
		Host:     "localhost",
		User:     "test_user",
		Password: "test_pass",
		Name:     "test_db",
		SslMode:  "disable",
		LogLevel: "silent",
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}
	if err := pool.Client.Ping(); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrDockerUnavailable, err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "13",
		Env: []string{
			"POSTGRES_PASSWORD=" + cfg.Password,
			"POSTGRES_USER=" + cfg.User,
			"POSTGRES_DB=" + cfg.Name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not start postgres: %w", err)
	}
	cfg.Port = resource.GetPort("5432/tcp")

	if err := resource.Expire(120); err != nil {
		return nil, nil, nil, err
	}

	var st *postgres.Store
	pool.MaxWait = 60 * time.Second
	if err := pool.Retry(func() error {
		st, err = postgres.NewStore(cfg)
		if err != nil {
			return err
		}
		sqlDB, err := st.DB().DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		pool.Purge(resource)
		return nil, nil, nil, fmt.Errorf("could not connect to postgres: %w", err)
	}

	if err := st.Migrate(); err != nil {
		pool.Purge(resource)
		return nil, nil, nil, fmt.Errorf("migrating test store: %w", err)
	}

	return st, pool, resource, nil
}
