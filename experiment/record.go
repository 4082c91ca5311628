package experiment

import (
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Record is the on-disk log of one experiment run.
type Record struct {
	ID         string    `yaml:"id"`
	Type       string    `yaml:"type"`
	DiameterMM float64   `yaml:"diameter_mm"`
	Params     []Params  `yaml:"params"`
	StartedAt  time.Time `yaml:"started_at"`
	FinishedAt time.Time `yaml:"finished_at"`
	// Responses is the raw pump echo text in send order. The rig never parses
	// it, but having it in the run log is the only way to check after the
	// fact whether the pump reported an error code.
	Responses []string `yaml:"responses,omitempty"`
}

func NewRecord(experimentType string, diameterMM float64, params ...Params) *Record {
	return &Record{
		ID:         uuid.NewString(),
		Type:       experimentType,
		DiameterMM: diameterMM,
		Params:     params,
		StartedAt:  time.Now(),
	}
}

func (r *Record) Append(resp string) {
	r.Responses = append(r.Responses, resp)
}

func (r *Record) Finish() {
	r.FinishedAt = time.Now()
}

func (r *Record) Save(w io.Writer) error {
	return yaml.NewEncoder(w).Encode(r)
}
