/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>
*/
package cmd

import (
	"fmt"

	"github.com/jt05610/droplet/comm/serial"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List available serial ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		pp, err := serial.ListPorts()
		if err != nil {
			return err
		}
		if len(pp) == 0 {
			fmt.Println("no serial ports found")
			return nil
		}
		for _, p := range pp {
			fmt.Println(p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
