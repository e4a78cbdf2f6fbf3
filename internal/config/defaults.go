package config

// Default configuration values.
const (
	DefaultBuildRoot  = "build"
	DefaultSourceExt  = ".c"
	DefaultCompiler   = "cc -o {out} {src}"
	DefaultResultFlag = "--gtest_output=xml:"
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyBuildDefaults(cfg)
	applyFrameworkDefaults(cfg)
}

func applyBuildDefaults(cfg *Config) {
	if cfg.Build == nil {
		cfg.Build = &BuildConfig{}
	}
	if cfg.Build.Root == "" {
		cfg.Build.Root = DefaultBuildRoot
	}
	if cfg.Build.SourceExt == "" {
		cfg.Build.SourceExt = DefaultSourceExt
	}
	if cfg.Build.Compiler == "" {
		cfg.Build.Compiler = DefaultCompiler
	}
}

func applyFrameworkDefaults(cfg *Config) {
	if cfg.Framework == nil {
		cfg.Framework = &FrameworkConfig{}
	}
	if cfg.Framework.ResultFlag == "" {
		cfg.Framework.ResultFlag = DefaultResultFlag
	}
	// An empty candidate list stays empty here; the framework package
	// substitutes its own defaults when probing.
}
