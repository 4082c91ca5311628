package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jt05610/droplet/pump"
	"go.uber.org/zap"
)

type Environment struct {
	SerialPort string
	Baud       int
	OutputDir  string
}

// LoadEnv reads optional defaults from .env. Everything here can also come
// from a flag, so missing values are fine; flags win when both are set.
func LoadEnv(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env", zap.Error(err))
	}
	e := &Environment{Baud: pump.DefaultBaud, OutputDir: "output"}
	if v, found := os.LookupEnv("SERIAL_PORT"); found {
		e.SerialPort = v
	}
	if v, found := os.LookupEnv("SERIAL_BAUD"); found {
		baud, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			logger.Fatal("Failed to parse SERIAL_BAUD", zap.Error(err))
		}
		e.Baud = int(baud)
	}
	if v, found := os.LookupEnv("OUTPUT_DIR"); found {
		e.OutputDir = v
	}
	return e
}
