// Copyright © 2020 Dmitry Mozzherin <dmozzherin@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/ithtable/internal/ent/cache"
	"github.com/gnames/ithtable/internal/ent/feature"
	"github.com/gnames/ithtable/internal/io/cacheio"
	"github.com/gnames/ithtable/internal/io/clinicalio"
	"github.com/gnames/ithtable/internal/io/immuneio"
	"github.com/gnames/ithtable/internal/io/ithio"
	"github.com/gnames/ithtable/internal/io/purityio"
	"github.com/gnames/ithtable/internal/io/tableio"
	"github.com/gnames/ithtable/internal/io/torqueio"
	ithtable "github.com/gnames/ithtable/pkg"
	"github.com/gnames/ithtable/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//go:embed ithtable.yaml
var configText string

var (
	opts []config.Option
)

type cfgData struct {
	WorkDir         string
	LogDir          string
	CancerLocs      []string
	Datasets        []string
	Methods         []string
	PatientListPath string
	OutputPath      string
	CrosswalkPath   string
	Tolerance       float64
	RuntimeCeiling  float64
	MinClusterSize  float64
	JobsNum         int
	CacheDir        string
	UseCache        bool
	PgHost          string
	PgUser          string
	PgPass          string
	PgDB            string
	PgTable         string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ithtable [log-dir]",
	Short: "Builds a table of ITH features, runtimes and immune scores",
	Long: `Aggregates clinical data, purity estimates, results of ITH
methods, their runtimes from Torque epilogue logs and immune
signatures into one table with a row per patient.

The log directory can be given as an argument or as LogDir in
the configuration file.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		version, err := cmd.Flags().GetBool("version")
		if err != nil {
			slog.Error("Cannot get flag", "error", err)
			os.Exit(1)
		}
		if version {
			fmt.Printf("\nversion: %s\nbuild: %s\n\n", ithtable.Version, ithtable.Build)
			os.Exit(0)
		}

		if len(args) == 1 {
			opts = append(opts, config.OptLogDir(args[0]))
		}
		flagOpts(cmd)
		cfg := config.New(opts...)
		if cfg.LogDir == "" {
			_ = cmd.Help()
			os.Exit(0)
		}

		reset, _ := cmd.Flags().GetBool("reset-cache")
		if err = run(cfg, reset); err != nil {
			slog.Error("Cannot build feature table", "error", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolP("version", "V", false, "Returns version and build date")
	rootCmd.Flags().StringP("work-dir", "w", "", "Root directory of input data")
	rootCmd.Flags().StringP("output", "o", "", "Path of the output table")
	rootCmd.Flags().IntP("jobs", "j", 0, "Number of concurrent jobs")
	rootCmd.Flags().BoolP("cache", "c", false, "Reuse summaries of previous runs")
	rootCmd.Flags().Bool("reset-cache", false, "Remove cached summaries before the run")
	rootCmd.Flags().StringP("pg-db", "d", "", "Export the table to this PostgreSQL database")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	var err error
	var homeDir, cfgDir string
	configFile := "ithtable"

	// Find home directory.
	homeDir, err = os.UserHomeDir()
	if err != nil {
		slog.Error("Cannot find home dir", "error", err)
		os.Exit(1)
	}
	cfgDir = filepath.Join(homeDir, ".config")

	viper.AddConfigPath(cfgDir)
	viper.SetConfigName(configFile)

	configPath := filepath.Join(cfgDir, fmt.Sprintf("%s.yaml", configFile))
	touchConfigFile(configPath)

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		slog.Error("Config file ithtable.yaml not found", "error", err)
		os.Exit(1)
	}
	getOpts()
}

// getOpts imports data from the configuration file. Some of the settings can
// be overriden by command line flags.
func getOpts() {
	cfg := cfgData{}
	err := viper.Unmarshal(&cfg)
	if err != nil {
		slog.Error("Cannot unmarshal config file", "error", err)
	}

	if cfg.WorkDir != "" {
		opts = append(opts, config.OptWorkDir(cfg.WorkDir))
	}
	if cfg.LogDir != "" {
		opts = append(opts, config.OptLogDir(cfg.LogDir))
	}
	if len(cfg.CancerLocs) > 0 {
		opts = append(opts, config.OptCancerLocs(cfg.CancerLocs))
	}
	if len(cfg.Datasets) > 0 {
		opts = append(opts, config.OptDatasets(cfg.Datasets))
	}
	if len(cfg.Methods) > 0 {
		opts = append(opts, config.OptMethods(cfg.Methods))
	}
	if cfg.PatientListPath != "" {
		opts = append(opts, config.OptPatientListPath(cfg.PatientListPath))
	}
	if cfg.OutputPath != "" {
		opts = append(opts, config.OptOutputPath(cfg.OutputPath))
	}
	if cfg.CrosswalkPath != "" {
		opts = append(opts, config.OptCrosswalkPath(cfg.CrosswalkPath))
	}
	if cfg.Tolerance != 0 {
		opts = append(opts, config.OptTolerance(cfg.Tolerance))
	}
	if cfg.RuntimeCeiling != 0 {
		opts = append(opts, config.OptRuntimeCeiling(cfg.RuntimeCeiling))
	}
	if cfg.MinClusterSize != 0 {
		opts = append(opts, config.OptMinClusterSize(cfg.MinClusterSize))
	}
	if cfg.JobsNum != 0 {
		opts = append(opts, config.OptJobsNum(cfg.JobsNum))
	}
	if cfg.CacheDir != "" {
		opts = append(opts, config.OptCacheDir(cfg.CacheDir))
	}
	if cfg.UseCache {
		opts = append(opts, config.OptUseCache(true))
	}
	if cfg.PgHost != "" {
		opts = append(opts, config.OptPgHost(cfg.PgHost))
	}
	if cfg.PgUser != "" {
		opts = append(opts, config.OptPgUser(cfg.PgUser))
	}
	if cfg.PgPass != "" {
		opts = append(opts, config.OptPgPass(cfg.PgPass))
	}
	if cfg.PgDB != "" {
		opts = append(opts, config.OptPgDB(cfg.PgDB))
	}
	if cfg.PgTable != "" {
		opts = append(opts, config.OptPgTable(cfg.PgTable))
	}
}

// flagOpts adds options from command line flags, they override the
// configuration file.
func flagOpts(cmd *cobra.Command) {
	if s, _ := cmd.Flags().GetString("work-dir"); s != "" {
		opts = append(opts, config.OptWorkDir(s))
	}
	if s, _ := cmd.Flags().GetString("output"); s != "" {
		opts = append(opts, config.OptOutputPath(s))
	}
	if j, _ := cmd.Flags().GetInt("jobs"); j > 0 {
		opts = append(opts, config.OptJobsNum(j))
	}
	if b, _ := cmd.Flags().GetBool("cache"); b {
		opts = append(opts, config.OptUseCache(true))
	}
	if s, _ := cmd.Flags().GetString("pg-db"); s != "" {
		opts = append(opts, config.OptPgDB(s))
	}
}

func run(cfg config.Config, resetCache bool) error {
	readers, err := ithio.NewAll(cfg.WorkDir, cfg.Methods)
	if err != nil {
		return err
	}

	src := ithtable.Sources{
		Clinical: clinicalio.New(cfg.WorkDir),
		Purity:   purityio.New(cfg.WorkDir),
		ITH:      readers,
		Runtime:  torqueio.New(cfg.LogDir, cfg.Path(cfg.PatientListPath)),
		Immune:   immuneio.New(cfg.WorkDir),
	}

	if cfg.UseCache {
		var c cache.Cache
		c, err = cacheio.New(cfg.CacheDir, resetCache)
		if err != nil {
			return err
		}
		if err = c.Open(); err != nil {
			return err
		}
		defer c.Close()
		src.Cache = c
	}

	it := ithtable.New(cfg)
	tbl, err := it.Build(src)
	if err != nil {
		return err
	}

	ws := []feature.Writer{tableio.NewTSV(cfg.Path(cfg.OutputPath))}
	if cfg.PgDB != "" {
		ws = append(ws, tableio.NewPg(cfg, ithtable.Version))
	}
	if err = it.Save(tbl, ws...); err != nil {
		return err
	}
	slog.Info("Feature table is saved", "path", cfg.Path(cfg.OutputPath))
	return nil
}

// touchConfigFile checks if config file exists, and if not, it gets created.
func touchConfigFile(configPath string) {
	fileExists, _ := gnsys.FileExists(configPath)
	if fileExists {
		return
	}

	slog.Info("Creating config file", "path", configPath)
	createConfig(configPath)
}

// createConfig creates config file.
func createConfig(path string) {
	err := gnsys.MakeDir(filepath.Dir(path))
	if err != nil {
		slog.Error("Cannot create config dir", "error", err)
		os.Exit(1)
	}

	err = os.WriteFile(path, []byte(configText), 0644)
	if err != nil {
		slog.Error("Cannot write to config file", "error", err)
		os.Exit(1)
	}
}
