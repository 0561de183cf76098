package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"remedian/internal/probe"
)

var idCmd = &cobra.Command{
	Use:   "id",
	Short: "Print this machine's hardware identity for provisioning",
	Long: `Prints the hardware identity and the numeric device id derived from
it. Configs that leave device.id_device at 0 report under the derived
id; this command shows what that will be.`,
	Run: func(*cobra.Command, []string) {
		ctx := context.Background()
		fmt.Printf("hardware_id: %s\n", probe.HardwareID(ctx))
		fmt.Printf("id_device:   %d\n", probe.DeviceNumber(ctx))
	},
}
