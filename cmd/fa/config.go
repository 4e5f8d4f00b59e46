package main

import "github.com/BurntSushi/toml"

// Config holds user-level CLI defaults read from an optional TOML file,
// following the same toml-tag style internal/game and internal/tqw use for
// world data.
type Config struct {
	// OutputFormat is either "wire" (the canonical JSON format) or "text"
	// (the debugging String() rendering). Defaults to "wire".
	OutputFormat string `toml:"output_format"`

	// SinkStateName overrides the name the complete subcommand gives the
	// error-sink state it introduces, in both wire and text output. Empty
	// falls back to the package default ("qerr"); either way, a name
	// collision with an existing state is resolved by appending "_".
	SinkStateName string `toml:"sink_state_name"`
}

func defaultConfig() Config {
	return Config{OutputFormat: "wire"}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
