package pump

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeConn struct {
	lines   []string
	pending []byte
	closed  int
}

func (f *fakeConn) WriteLine(line string) error {
	f.lines = append(f.lines, line+"\r\n")
	return nil
}

func (f *fakeConn) Drain() ([]byte, error) {
	bb := f.pending
	f.pending = nil
	return bb, nil
}

func (f *fakeConn) Close() error {
	f.closed++
	return nil
}

func newTestPump(conn Conn) *Pump {
	p := New(Config{Port: "/dev/ttyUSB0", Settle: time.Millisecond}, zap.NewNop())
	p.conn = conn
	return p
}

var wireCases = []struct {
	name   string
	send   func(p *Pump)
	expect string
}{
	{
		name:   "diameter",
		send:   func(p *Pump) { p.SetDiameter(14.5) },
		expect: "DIA 14.5\r\n",
	},
	{
		name:   "rate",
		send:   func(p *Pump) { p.SetRate(0.5, MillilitersPerHour) },
		expect: "RAT 0.5 MH\r\n",
	},
	{
		name:   "volume drops trailing zero",
		send:   func(p *Pump) { p.SetVolume(1.0, Microliters) },
		expect: "VOL 1 UL\r\n",
	},
	{
		name:   "direction",
		send:   func(p *Pump) { p.SetDirection(Withdraw) },
		expect: "DIR WDR\r\n",
	},
	{
		name:   "run",
		send:   func(p *Pump) { p.Run() },
		expect: "RUN\r\n",
	},
	{
		name:   "stop",
		send:   func(p *Pump) { p.Stop() },
		expect: "STP\r\n",
	},
	{
		name:   "reset",
		send:   func(p *Pump) { p.Reset() },
		expect: "RST\r\n",
	},
}

func TestWireFormat(t *testing.T) {
	for _, tc := range wireCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &fakeConn{}
			tc.send(newTestPump(conn))
			if len(conn.lines) != 1 {
				t.Fatalf("expected 1 line, got %d", len(conn.lines))
			}
			if conn.lines[0] != tc.expect {
				t.Fatalf("expected %q on the wire, got %q", tc.expect, conn.lines[0])
			}
		})
	}
}

func TestDirectionVerbOverride(t *testing.T) {
	conn := &fakeConn{}
	p := New(Config{Port: "/dev/ttyUSB0", Settle: time.Millisecond, DirectionVerb: "DIRE"}, zap.NewNop())
	p.conn = conn
	p.SetDirection(Infuse)
	if conn.lines[0] != "DIRE INF\r\n" {
		t.Fatalf("expected DIRE verb, got %q", conn.lines[0])
	}
}

func TestSendEcho(t *testing.T) {
	conn := &fakeConn{pending: []byte("  10S\xff\xfe\r\n")}
	p := newTestPump(conn)
	resp := p.Send("RUN")
	if resp != "10S" {
		t.Fatalf("expected trimmed ascii echo %q, got %q", "10S", resp)
	}
}

func TestSendDisconnected(t *testing.T) {
	p := New(Config{Port: "/dev/ttyUSB0"}, zap.NewNop())
	if resp := p.Send("RUN"); resp != "" {
		t.Fatalf("expected empty response while disconnected, got %q", resp)
	}
	if resp := p.SetDiameter(14.5); resp != "" {
		t.Fatalf("expected empty response while disconnected, got %q", resp)
	}
}

func TestDisconnectIdempotent(t *testing.T) {
	conn := &fakeConn{}
	p := newTestPump(conn)
	if err := p.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if err := p.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if conn.closed != 1 {
		t.Fatalf("expected 1 close, got %d", conn.closed)
	}
	if p.Connected() {
		t.Fatal("expected pump to report disconnected")
	}
}
