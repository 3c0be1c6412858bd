package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/zylix-runner/pkg/config"
	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/device"
	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

var devicesCommand = &cli.Command{
	Name:  "devices",
	Usage: "List known devices from the inventory and ADB",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "no-discover",
			Usage: "Skip ADB discovery, list only the static inventory",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		registry := buildRegistry(cfg)
		if !c.Bool("no-discover") {
			if _, err := device.DiscoverAndroid(registry); err != nil {
				logger.Warn("ADB discovery failed: %v", err)
			}
		}

		filter := device.Filter{Platform: core.Platform(c.String("platform"))}
		devices := registry.Find(filter)
		if len(devices) == 0 {
			fmt.Println("No devices found")
			return nil
		}

		fmt.Printf("%-24s %-10s %-10s %-12s %s\n", "ID", "PLATFORM", "OS", "STATUS", "TAGS")
		for _, d := range devices {
			fmt.Printf("%-24s %-10s %-10s %-12s %v\n",
				d.ID, d.Platform, d.OSVersion, d.Status, d.Tags)
		}
		return nil
	},
}

// loadConfig reads the config named by --config, or searches the working
// directory.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadFromDir(".")
}

// buildRegistry registers the static device inventory.
func buildRegistry(cfg *config.Config) *device.Registry {
	registry := device.NewRegistry()
	for _, d := range cfg.Devices {
		registry.Register(device.Info{
			ID:           d.ID,
			Platform:     core.Platform(d.Platform),
			OSVersion:    d.OSVersion,
			Capabilities: d.Capabilities,
			Tags:         d.Tags,
		})
	}
	return registry
}

// backendConfig resolves the transport endpoint for a platform.
func backendConfig(cfg *config.Config, platform core.Platform) core.DriverConfig {
	if b, ok := cfg.Backends[string(platform)]; ok {
		return core.DriverConfig{Host: b.Host, Port: b.Port, Timeout: b.Timeout}
	}
	return core.DriverConfig{}
}
