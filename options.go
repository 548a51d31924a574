package efx

import "github.com/hashicorp/go-hclog"

type readConfig struct {
	endian Endian
	target *Target
	game   Game
	logger hclog.Logger
}

// ReadOption configures Parse.
type ReadOption func(*readConfig)

// WithEndian sets the byte order of the whole file. The default is little endian.
func WithEndian(e Endian) ReadOption {
	return func(c *readConfig) { c.endian = e }
}

// WithTarget skips target detection. t must be a supported combination whose
// version matches the file header.
func WithTarget(t Target) ReadOption {
	return func(c *readConfig) { c.target = &t }
}

// WithGame forces the game while still taking the version from the file
// header. The combination must be supported.
func WithGame(g Game) ReadOption {
	return func(c *readConfig) { c.game = g }
}

// WithReadLogger sets the logger that receives per-chunk trace output.
func WithReadLogger(l hclog.Logger) ReadOption {
	return func(c *readConfig) { c.logger = l }
}

func newReadConfig(opts []ReadOption) readConfig {
	c := readConfig{endian: LittleEndian}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	return c
}

type writeConfig struct {
	logger hclog.Logger
}

// WriteOption configures Build and EffectFile.Encode.
type WriteOption func(*writeConfig)

// WithWriteLogger sets the logger that receives per-chunk trace output.
func WithWriteLogger(l hclog.Logger) WriteOption {
	return func(c *writeConfig) { c.logger = l }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	var c writeConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	return c
}
