package config

import (
	"os"
	"path/filepath"
)

var (
	cancerLocs = []string{"BRCA", "HNSC", "BLCA"}
	datasets   = []string{"protected_hg38_vcf", "public_hg38_vcf"}
	methods    = []string{"pyclone", "PhyloWGS", "sciclone", "baseline", "expands", "CSR"}
)

// Config is a struct that holds configuration parameters for the package.
type Config struct {
	// WorkDir is the directory all relative input and output paths are
	// resolved against.
	WorkDir string

	// LogDir is a directory with scheduler epilogue logs.
	LogDir string

	// CancerLocs are cancer types included in the table.
	CancerLocs []string

	// Datasets are mutation-call datasets every ITH method ran on.
	Datasets []string

	// Methods are ITH methods to summarize.
	Methods []string

	// ProtectedCohort is the name of the mutation cohort that defines
	// which patients are kept.
	ProtectedCohort string

	// PublicCohort is an additional mutation cohort.
	PublicCohort string

	// PatientListPath is a CSV that assigns array indices to patients.
	PatientListPath string

	// OutputPath is the path of the final table.
	OutputPath string

	// CrosswalkPath is the path of the translated signatures file.
	CrosswalkPath string

	// SaveCrosswalk enables saving of the signatures crosswalk.
	SaveCrosswalk bool

	// Tolerance is the number of seconds a result file can be modified
	// after the end of its job.
	Tolerance float64

	// RuntimeCeiling is a runtime in seconds above which the number of
	// clones is discarded.
	RuntimeCeiling float64

	// MinClusterSize is the number of mutations a cluster must exceed to
	// be retained.
	MinClusterSize float64

	// JobsNum is a number of concurrent goroutines.
	JobsNum int

	// CacheDir is a directory for the key-value store of summaries.
	CacheDir string

	// UseCache enables reuse of summaries computed by previous runs.
	UseCache bool

	// PgHost is a host name for PostgreSQL.
	PgHost string

	// PgUser is a user name for PostgreSQL.
	PgUser string

	// PgPass is a password for PostgreSQL.
	PgPass string

	// PgDB is a database name for PostgreSQL. If empty, the table is not
	// exported to PostgreSQL.
	PgDB string

	// PgTable is the name of the exported table.
	PgTable string
}

// Option type allows to change settings for Config.
type Option func(*Config)

// OptWorkDir sets the directory inputs are resolved against.
func OptWorkDir(d string) Option {
	return func(cfg *Config) {
		cfg.WorkDir = d
	}
}

// OptLogDir sets the directory with scheduler logs.
func OptLogDir(d string) Option {
	return func(cfg *Config) {
		cfg.LogDir = d
	}
}

// OptCancerLocs sets cancer types.
func OptCancerLocs(locs []string) Option {
	return func(cfg *Config) {
		cfg.CancerLocs = locs
	}
}

// OptDatasets sets mutation-call datasets.
func OptDatasets(ds []string) Option {
	return func(cfg *Config) {
		cfg.Datasets = ds
	}
}

// OptMethods sets ITH methods.
func OptMethods(ms []string) Option {
	return func(cfg *Config) {
		cfg.Methods = ms
	}
}

// OptPatientListPath sets the path of the patient to array index table.
func OptPatientListPath(p string) Option {
	return func(cfg *Config) {
		cfg.PatientListPath = p
	}
}

// OptOutputPath sets the path of the final table.
func OptOutputPath(p string) Option {
	return func(cfg *Config) {
		cfg.OutputPath = p
	}
}

// OptCrosswalkPath sets the path of the signatures crosswalk.
func OptCrosswalkPath(p string) Option {
	return func(cfg *Config) {
		cfg.CrosswalkPath = p
	}
}

// OptSaveCrosswalk toggles saving of the signatures crosswalk.
func OptSaveCrosswalk(b bool) Option {
	return func(cfg *Config) {
		cfg.SaveCrosswalk = b
	}
}

// OptTolerance sets timestamp tolerance in seconds.
func OptTolerance(t float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = t
	}
}

// OptRuntimeCeiling sets maximum acceptable runtime in seconds.
func OptRuntimeCeiling(t float64) Option {
	return func(cfg *Config) {
		cfg.RuntimeCeiling = t
	}
}

// OptMinClusterSize sets cluster size threshold.
func OptMinClusterSize(s float64) Option {
	return func(cfg *Config) {
		cfg.MinClusterSize = s
	}
}

// OptJobsNum sets parallelism number for concurrent goroutines.
func OptJobsNum(j int) Option {
	return func(cfg *Config) {
		cfg.JobsNum = j
	}
}

// OptCacheDir sets a directory for cached summaries.
func OptCacheDir(d string) Option {
	return func(cfg *Config) {
		cfg.CacheDir = d
	}
}

// OptUseCache toggles the summaries cache.
func OptUseCache(b bool) Option {
	return func(cfg *Config) {
		cfg.UseCache = b
	}
}

// OptPgHost sets host name for PostgreSQL
func OptPgHost(h string) Option {
	return func(cfg *Config) {
		cfg.PgHost = h
	}
}

// OptPgUser sets user for PostgreSQL
func OptPgUser(u string) Option {
	return func(cfg *Config) {
		cfg.PgUser = u
	}
}

// OptPgPass sets password for PostgreSQL
func OptPgPass(p string) Option {
	return func(cfg *Config) {
		cfg.PgPass = p
	}
}

// OptPgDB sets database name for PostgreSQL
func OptPgDB(d string) Option {
	return func(cfg *Config) {
		cfg.PgDB = d
	}
}

// OptPgTable sets table name for PostgreSQL
func OptPgTable(t string) Option {
	return func(cfg *Config) {
		cfg.PgTable = t
	}
}

// New creates Config with default values modified by options.
func New(opts ...Option) Config {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	cacheDir = filepath.Join(cacheDir, "ithtable", "summaries")

	res := Config{
		WorkDir:         ".",
		CancerLocs:      cancerLocs,
		Datasets:        datasets,
		Methods:         methods,
		ProtectedCohort: "qc",
		PublicCohort:    "public",
		PatientListPath: "official_patient_list.csv",
		OutputPath:      filepath.Join("tmp", "20180801_ith_method_metrics_final_runtime_immunity.csv"),
		CrosswalkPath:   filepath.Join("data", "pancancer", "bindea_signatures_ensembl.csv"),
		SaveCrosswalk:   true,
		Tolerance:       2,
		RuntimeCeiling:  15 * 3600,
		MinClusterSize:  5,
		JobsNum:         4,
		CacheDir:        cacheDir,
		PgHost:          "0.0.0.0",
		PgUser:          "postgres",
		PgPass:          "postgres",
		PgTable:         "ith_features",
	}

	for _, opt := range opts {
		opt(&res)
	}

	return res
}

// Path resolves a path against WorkDir unless it is absolute.
func (cfg Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.WorkDir, p)
}
