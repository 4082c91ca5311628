package pump

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jt05610/droplet/comm/serial"
	"go.uber.org/zap"
)

// Conn is a line-oriented serial channel to the pump.
type Conn interface {
	WriteLine(line string) error
	Drain() ([]byte, error)
	Close() error
}

var _ Conn = (*serial.Port)(nil)

const (
	DefaultBaud   = 19200
	DefaultSettle = 500 * time.Millisecond
)

type Config struct {
	Port string
	Baud int
	// Settle is how long to wait after writing a command before draining the
	// firmware's reply.
	Settle time.Duration
	// DirectionVerb is DIR by default; some firmware revisions want DIRE.
	DirectionVerb string
}

// Pump drives a New Era-style syringe pump. A nil connection means "not
// connected": sends become logged no-ops rather than errors, matching how the
// rig is operated — pump-reported error codes only ever travel back as echo
// text.
type Pump struct {
	cfg    Config
	conn   Conn
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Pump {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.Settle == 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.DirectionVerb == "" {
		cfg.DirectionVerb = "DIR"
	}
	return &Pump{cfg: cfg, logger: logger}
}

// Connect opens the serial channel. On failure the pump stays disconnected
// and every subsequent send is a no-op.
func (p *Pump) Connect() error {
	port, err := serial.OpenPort(p.cfg.Port, p.cfg.Baud)
	if err != nil {
		p.logger.Error("Failed to connect to pump", zap.String("port", p.cfg.Port), zap.Error(err))
		return err
	}
	p.conn = port
	p.logger.Info("Connected to pump", zap.String("port", p.cfg.Port), zap.Int("baud", p.cfg.Baud))
	return nil
}

func (p *Pump) Connected() bool {
	return p.conn != nil
}

// Disconnect closes the serial channel if open. Calling it again is a no-op.
func (p *Pump) Disconnect() error {
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	if err != nil {
		p.logger.Error("Failed to close port", zap.String("port", p.cfg.Port), zap.Error(err))
		return err
	}
	p.logger.Info("Disconnected from pump", zap.String("port", p.cfg.Port))
	return nil
}

// Send writes one command line, sleeps for the settle delay so the firmware
// has time to answer, and returns whatever echo text arrived. Undecodable
// bytes are dropped.
func (p *Pump) Send(cmd string) string {
	if p.conn == nil {
		p.logger.Warn("Pump not connected", zap.String("cmd", cmd))
		return ""
	}
	p.logger.Debug("Sending command", zap.String("cmd", cmd))
	if err := p.conn.WriteLine(cmd); err != nil {
		p.logger.Error("Failed to send command", zap.String("cmd", cmd), zap.Error(err))
		return ""
	}
	time.Sleep(p.cfg.Settle)
	bb, err := p.conn.Drain()
	if err != nil {
		p.logger.Error("Failed to read response", zap.String("cmd", cmd), zap.Error(err))
		return ""
	}
	resp := strings.TrimSpace(asciiOnly(bb))
	p.logger.Debug("Received response", zap.String("cmd", cmd), zap.String("response", resp))
	return resp
}

func asciiOnly(bb []byte) string {
	out := make([]byte, 0, len(bb))
	for _, b := range bb {
		if b < utf8.RuneSelf {
			out = append(out, b)
		}
	}
	return string(out)
}

// SetDiameter sets the syringe diameter in mm. The pump calibrates volume
// against it, so it must be set before any volume-based run.
func (p *Pump) SetDiameter(mm float64) string {
	resp := p.Send(fmt.Sprintf("DIA %s", formatFloat(mm)))
	p.logger.Info("Set diameter", zap.Float64("mm", mm), zap.String("response", resp))
	return resp
}

func (p *Pump) SetRate(value float64, unit RateUnit) string {
	resp := p.Send(fmt.Sprintf("RAT %s %s", formatFloat(value), unit))
	p.logger.Info("Set rate", zap.Float64("value", value), zap.String("unit", string(unit)), zap.String("response", resp))
	return resp
}

func (p *Pump) SetVolume(value float64, unit VolumeUnit) string {
	resp := p.Send(fmt.Sprintf("VOL %s %s", formatFloat(value), unit))
	p.logger.Info("Set volume", zap.Float64("value", value), zap.String("unit", string(unit)), zap.String("response", resp))
	return resp
}

func (p *Pump) SetDirection(d Direction) string {
	resp := p.Send(fmt.Sprintf("%s %s", p.cfg.DirectionVerb, d))
	p.logger.Info("Set direction", zap.String("direction", string(d)), zap.String("response", resp))
	return resp
}

func (p *Pump) Run() string {
	resp := p.Send("RUN")
	p.logger.Info("Running pump", zap.String("response", resp))
	return resp
}

func (p *Pump) Stop() string {
	resp := p.Send("STP")
	p.logger.Info("Stopping pump", zap.String("response", resp))
	return resp
}

func (p *Pump) Reset() string {
	resp := p.Send("RST")
	p.logger.Info("Resetting pump", zap.String("response", resp))
	return resp
}
