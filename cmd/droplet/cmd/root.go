/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/jt05610/droplet/env"
	"github.com/jt05610/droplet/pump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serialPort string
	baud       int
	diameter   float64
)

var rootCmd = &cobra.Command{
	Use:   "droplet",
	Short: "Run syringe pump droplet experiments and generate PPL scripts",
	Long: `droplet drives a syringe pump over a serial line to run droplet
generation experiments, and pre-generates PPL script files from YAML recipes
for runs without a host connection.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serialPort, "port", "", "serial port for the pump (e.g. COM3, /dev/ttyUSB0)")
	rootCmd.PersistentFlags().IntVar(&baud, "baud", 0, fmt.Sprintf("baud rate for the serial connection (default %d)", pump.DefaultBaud))
}

func newLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}

// pumpConfig merges flags over .env defaults. The port is the one thing that
// has to come from somewhere.
func pumpConfig(environ *env.Environment) (pump.Config, error) {
	cfg := pump.Config{Port: environ.SerialPort, Baud: environ.Baud}
	if serialPort != "" {
		cfg.Port = serialPort
	}
	if baud != 0 {
		cfg.Baud = baud
	}
	if cfg.Port == "" {
		return cfg, fmt.Errorf("no serial port: pass --port or set SERIAL_PORT")
	}
	return cfg, nil
}
