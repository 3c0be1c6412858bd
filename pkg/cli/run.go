package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/zylix-runner/pkg/config"
	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/device"
	"github.com/devicelab-dev/zylix-runner/pkg/driver"
	"github.com/devicelab-dev/zylix-runner/pkg/executor"
	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Run a smoke task against every allocatable device",
	Flags: []cli.Flag{
		&cli.DurationFlag{
			Name:  "task-timeout",
			Usage: "Per-task timeout",
			Value: 60 * time.Second,
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "Per-task retry budget",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		logger.Info("Run %s starting", runID)

		for k, v := range cfg.Env {
			if err := os.Setenv(k, v); err != nil {
				return err
			}
		}

		registry := buildRegistry(cfg)
		if _, err := device.DiscoverAndroid(registry); err != nil {
			logger.Debug("ADB discovery skipped: %v", err)
		}
		if registry.Len() == 0 {
			return fmt.Errorf("no devices in inventory; configure devices or connect hardware")
		}

		pool := device.NewPool(registry)
		health := device.NewHealthMonitor(registry,
			cfg.Health.UnhealthyThreshold, cfg.Health.HealthyThreshold)

		timeout := c.Duration("task-timeout")
		if cfg.TaskTimeout > 0 {
			timeout = cfg.TaskTimeout
		}
		retries := c.Int("retries")
		if cfg.Retries > 0 {
			retries = cfg.Retries
		}

		workers, tasks, err := allocateWorkers(cfg, pool,
			core.Platform(c.String("platform")), timeout, retries)
		if err != nil {
			return err
		}
		if len(workers) == 0 {
			return fmt.Errorf("no devices could be allocated")
		}

		queue := executor.NewWorkQueue()
		shard := executor.TestShard{Index: cfg.ShardIndex, Total: cfg.ShardTotal}
		tasks = executor.FilterByTags(tasks, cfg.IncludeTags, cfg.ExcludeTags)
		for _, task := range shard.FilterTasks(tasks) {
			queue.AddTask(task)
		}

		results := executor.NewParallelExecutor(queue, workers).Execute(context.Background())

		passed, failed := 0, 0
		for _, r := range results {
			fmt.Printf("%-10s %-36s %8s  worker=%d retries=%d\n",
				r.Status, r.Name, r.Duration.Round(time.Millisecond), r.WorkerID, r.RetryCount)
			health.RecordResult(r.TaskID, r.Passed(), nil)
			if r.Passed() {
				passed++
			} else {
				failed++
			}
		}

		logger.Info("Run %s finished: %d passed, %d failed", runID, passed, failed)
		fmt.Printf("\n%d passed, %d failed, %d total\n", passed, failed, len(results))
		if failed > 0 {
			return fmt.Errorf("%d task(s) failed", failed)
		}
		return nil
	},
}

// allocateWorkers claims every allocatable device matching the platform
// filter, binding one worker and one smoke task to each.
func allocateWorkers(cfg *config.Config, pool *device.Pool, platform core.Platform,
	timeout time.Duration, retries int) ([]executor.Worker, []executor.TestTask, error) {

	var workers []executor.Worker
	var tasks []executor.TestTask

	for id := 0; ; id++ {
		if cfg.Workers > 0 && id >= cfg.Workers {
			break
		}
		info, ok := pool.Allocate(device.Filter{Platform: platform}, "zylix-runner", timeout)
		if !ok {
			break
		}

		d, err := driver.New(info.Platform, backendConfig(cfg, info.Platform))
		if err != nil {
			pool.Release(info.ID)
			return nil, nil, err
		}

		deviceID := info.ID
		workers = append(workers, executor.Worker{
			ID:      id,
			Driver:  d,
			Cleanup: func() { pool.Release(deviceID) },
		})
		tasks = append(tasks, smokeTask(info.ID, info.Platform, timeout, retries))
	}
	return workers, tasks, nil
}

// smokeTask launches the worker's driver, captures a screenshot, and
// terminates the session.
func smokeTask(deviceID string, platform core.Platform, timeout time.Duration, retries int) executor.TestTask {
	return executor.TestTask{
		ID:      deviceID,
		Name:    "smoke/" + string(platform) + "/" + deviceID,
		Suite:   "smoke",
		Timeout: timeout,
		Retries: retries,
		Run: func(drv core.Driver) error {
			if drv == nil {
				return core.ErrNotConnected
			}
			if err := drv.Launch(); err != nil {
				return err
			}
			defer drv.Terminate()
			_, err := drv.Screenshot()
			return err
		},
	}
}
