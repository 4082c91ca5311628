/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/jt05610/droplet/env"
	"github.com/jt05610/droplet/recipe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	recipeDir string
	outDir    string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate PPL scripts from YAML recipes",
	Long: `gen reads single.yml and coalescence.yml from the recipe directory and
writes one PPL script per recipe entry. The output directory is cleared and
recreated first, so a batch never mixes with stale scripts. No pump connection
is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		defer func() { _ = logger.Sync() }()
		environ := env.LoadEnv(logger)
		if outDir == "" {
			outDir = environ.OutputDir
		}

		g := recipe.NewGenerator(outDir, logger)
		if err := g.Clean(); err != nil {
			return err
		}

		if r, found, err := loadSingle(filepath.Join(recipeDir, "single.yml")); err != nil {
			return err
		} else if !found {
			logger.Warn("No single recipe found", zap.String("dir", recipeDir))
		} else if err := g.GenerateSingle(r); err != nil {
			return err
		}

		if r, found, err := loadCoalescence(filepath.Join(recipeDir, "coalescence.yml")); err != nil {
			return err
		} else if !found {
			logger.Warn("No coalescence recipe found", zap.String("dir", recipeDir))
		} else if err := g.GenerateCoalescence(r); err != nil {
			return err
		}
		return nil
	},
}

func loadSingle(path string) (*recipe.Single, bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()
	r, err := recipe.LoadSingle(f)
	return r, true, err
}

func loadCoalescence(path string) (*recipe.Coalescence, bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = f.Close() }()
	r, err := recipe.LoadCoalescence(f)
	return r, true, err
}

func init() {
	rootCmd.AddCommand(genCmd)
	genCmd.Flags().StringVar(&recipeDir, "recipes", "recipes", "directory holding single.yml and coalescence.yml")
	genCmd.Flags().StringVar(&outDir, "out", "", "output directory for PPL scripts (default from OUTPUT_DIR or \"output\")")
}
