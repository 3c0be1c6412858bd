// Package driver constructs platform drivers from transport configuration.
package driver

import (
	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/android"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/ios"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/linuxbridge"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/macos"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/web"
	"github.com/devicelab-dev/zylix-runner/pkg/driver/windows"
)

// New builds an unbound driver for the platform. The returned driver still
// needs Launch to open a backend session.
func New(platform core.Platform, cfg core.DriverConfig) (core.Driver, error) {
	switch platform {
	case core.PlatformWeb:
		return web.New(web.Config{DriverConfig: cfg}), nil
	case core.PlatformIOS:
		return ios.New(ios.Config{DriverConfig: cfg}), nil
	case core.PlatformAndroid:
		return android.New(android.Config{DriverConfig: cfg}), nil
	case core.PlatformMacOS:
		return macos.New(macos.Config{DriverConfig: cfg}), nil
	case core.PlatformWindows:
		return windows.New(windows.Config{DriverConfig: cfg}), nil
	case core.PlatformLinux:
		return linuxbridge.New(linuxbridge.Config{DriverConfig: cfg}), nil
	default:
		return nil, core.NewDriverError(core.ErrKindConnection, "unknown_platform",
			"no driver for platform: "+string(platform))
	}
}
