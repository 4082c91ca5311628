package recipe

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jt05610/droplet/ppl"
	"go.uber.org/zap"
)

// Generator writes one PPL file per recipe entry under OutDir.
type Generator struct {
	OutDir string
	logger *zap.Logger
}

func NewGenerator(outDir string, logger *zap.Logger) *Generator {
	return &Generator{OutDir: outDir, logger: logger}
}

// Clean removes output from a previous batch and recreates the directory.
func (g *Generator) Clean() error {
	if err := os.RemoveAll(g.OutDir); err != nil {
		return err
	}
	return os.MkdirAll(g.OutDir, 0o755)
}

func (g *Generator) save(path, script string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return err
	}
	g.logger.Info("Saved PPL script", zap.String("file", path))
	return nil
}

// GenerateSingle writes single_droplet/single_droplet_<v>uL.ppl per volume.
func (g *Generator) GenerateSingle(r *Single) error {
	for _, v := range r.VolumesUL {
		name := fmt.Sprintf("single_droplet_%suL.ppl", ppl.Float(v))
		path := filepath.Join(g.OutDir, "single_droplet", name)
		if err := g.save(path, ppl.Single(v, r.Pump.RateMLH)); err != nil {
			return err
		}
	}
	return nil
}

// GenerateCoalescence writes
// coalescence/<lead>uL_lead/coalescence_<lead>uL_lead_<trail>uL_trail.ppl per
// leading/trailing pair. Leading volumes with no trailing entry are skipped
// with a warning rather than failing the batch.
func (g *Generator) GenerateCoalescence(r *Coalescence) error {
	for _, lead := range r.LeadingUL {
		key := ppl.Float(lead)
		trails, found := r.TrailingUL[key]
		if !found {
			g.logger.Warn("No trailing volumes for leading volume", zap.String("leading_uL", key))
			continue
		}
		dir := filepath.Join(g.OutDir, "coalescence", key+"uL_lead")
		for _, trail := range trails {
			name := fmt.Sprintf("coalescence_%suL_lead_%suL_trail.ppl", key, ppl.Float(trail))
			script := ppl.Coalescence(lead, trail, r.Pump.RateMLH, r.WaitS)
			if err := g.save(filepath.Join(dir, name), script); err != nil {
				return err
			}
		}
	}
	return nil
}
