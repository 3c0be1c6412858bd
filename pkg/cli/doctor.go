package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/driver"
)

var doctorCommand = &cli.Command{
	Name:  "doctor",
	Usage: "Probe configured automation backends for reachability",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}

		platforms := []core.Platform{
			core.PlatformWeb, core.PlatformIOS, core.PlatformAndroid,
			core.PlatformMacOS, core.PlatformWindows, core.PlatformLinux,
		}
		if p := core.Platform(c.String("platform")); p.Valid() {
			platforms = []core.Platform{p}
		}

		healthy := 0
		for _, p := range platforms {
			d, err := driver.New(p, backendConfig(cfg, p))
			if err != nil {
				return err
			}
			if d.Available() {
				fmt.Printf("  ok    %s\n", p)
				healthy++
			} else {
				fmt.Printf("  down  %s\n", p)
			}
		}

		fmt.Printf("%d/%d backends reachable\n", healthy, len(platforms))
		return nil
	},
}
