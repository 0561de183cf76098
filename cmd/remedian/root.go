package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"remedian/internal/config"
	"remedian/internal/probe"
	"remedian/internal/remedian"
	"remedian/internal/remedy"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "remedian",
	Short: "Endpoint maintenance detection and remediation",
	Long: `Remedian runs maintenance checks on a managed machine and, when asked,
fixes what it finds. A detection exits non-zero when the machine is out
of compliance; a remediation performs the fix and reports structured
results to the configured endpoint.`,
	SilenceUsage: true,
}

// Execute runs the CLI. It is the last-resort safety net: any failure
// that escapes a command becomes a logged error and exit code 1 instead
// of an unhandled crash.
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Unhandled failure: %v", r)
			os.Exit(remedian.ExitNonCompliant)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(remedian.ExitNonCompliant)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(remediateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(idCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDeps builds the shared dependencies every command needs. A config
// that does not assign a device id gets one derived from the hardware
// identity, so the machine reports under a stable number either way.
func loadDeps() (*deps, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Device.IDDevice == 0 {
		cfg.Device.IDDevice = probe.DeviceNumber(context.Background())
		debugf("Derived device id %d from hardware identity", cfg.Device.IDDevice)
	}
	return &deps{
		cfg:     cfg,
		probe:   probe.New(),
		updater: remedy.UnsupportedUpdater{},
	}, nil
}

func debugf(format string, args ...any) {
	if debugMode {
		log.Printf("[DEBUG] "+format, args...)
	}
}
