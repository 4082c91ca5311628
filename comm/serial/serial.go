package serial

import (
	"time"

	"go.bug.st/serial"
)

const readTimeout = 500 * time.Millisecond

type Port struct {
	port serial.Port
}

func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}

func OpenPort(port string, baud int) (*Port, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	err = p.SetReadTimeout(readTimeout)
	if err != nil {
		return nil, err
	}
	return &Port{port: p}, nil
}

func (p *Port) Close() error {
	return p.port.Close()
}

// WriteLine writes one command line terminated with CR/LF.
func (p *Port) WriteLine(line string) error {
	_, err := p.port.Write(append([]byte(line), '\r', '\n'))
	return err
}

// Drain reads whatever bytes the device has sent so far. It returns once a
// read times out or comes back empty, so callers get everything that arrived
// during the settle delay without blocking on more.
func (p *Port) Drain() ([]byte, error) {
	buf := make([]byte, 128)
	out := make([]byte, 0, 128)
	for {
		n, err := p.port.Read(buf)
		if err != nil {
			return out, err
		}
		if n == 0 {
			return out, nil
		}
		out = append(out, buf[:n]...)
	}
}
