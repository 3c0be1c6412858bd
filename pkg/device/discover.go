package device

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/devicelab-dev/zylix-runner/pkg/core"
	"github.com/devicelab-dev/zylix-runner/pkg/logger"
)

// DiscoverAndroid lists devices visible to ADB and registers each as an
// available android device. Returns the registered ids.
func DiscoverAndroid(registry *Registry) ([]string, error) {
	adbPath, err := findADB()
	if err != nil {
		return nil, err
	}

	out, err := adb(adbPath, "", "devices")
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 || parts[1] != "device" {
			continue
		}
		serial := parts[0]

		info := Info{
			ID:           serial,
			Platform:     core.PlatformAndroid,
			Capabilities: []string{"uiautomator2"},
		}
		if version, err := adb(adbPath, serial, "shell", "getprop", "ro.build.version.release"); err == nil {
			info.OSVersion = strings.TrimSpace(version)
		}
		if qemu, err := adb(adbPath, serial, "shell", "getprop", "ro.kernel.qemu"); err == nil &&
			strings.TrimSpace(qemu) == "1" {
			info.Tags = append(info.Tags, "emulator")
		}

		registry.Register(info)
		ids = append(ids, serial)
	}

	logger.Info("Discovered %d android device(s)", len(ids))
	return ids, nil
}

// adb runs one ADB command, optionally scoped to a serial.
func adb(adbPath, serial string, args ...string) (string, error) {
	cmdArgs := make([]string, 0, len(args)+2)
	if serial != "" {
		cmdArgs = append(cmdArgs, "-s", serial)
	}
	cmdArgs = append(cmdArgs, args...)

	cmd := exec.Command(adbPath, cmdArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := stderr.String()
		if errMsg == "" {
			errMsg = stdout.String()
		}
		return "", fmt.Errorf("adb %s: %w: %s", strings.Join(args, " "), err, errMsg)
	}
	return stdout.String(), nil
}

// findADB locates the ADB binary on PATH.
func findADB() (string, error) {
	if path, err := exec.LookPath("adb"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("adb not found in PATH; ensure Android SDK is installed")
}
