package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithOpcodeBudget sets the per-Execute opcode budget. Zero disables the
// limit.
func (b *ConfigBuilder) WithOpcodeBudget(budget int) *ConfigBuilder {
	b.cfg.OpcodeBudget = budget
	return b
}

// WithScriptDir sets the directory movescript.LoadDir reads from.
func (b *ConfigBuilder) WithScriptDir(dir string) *ConfigBuilder {
	b.cfg.ScriptDir = dir
	return b
}

// WithBoardSize sets the default snapshot dimensions.
func (b *ConfigBuilder) WithBoardSize(width, height int) *ConfigBuilder {
	b.cfg.BoardWidth = width
	b.cfg.BoardHeight = height
	return b
}

// WithDebug enables or disables per-opcode tracing.
func (b *ConfigBuilder) WithDebug(enabled bool) *ConfigBuilder {
	b.cfg.Debug = enabled
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

// WithWorkers sets the worker pool size used by batch move generation.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}
