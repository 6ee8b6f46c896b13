package mdwrap

// DefaultWidth is the byte width used when no positive width is configured.
const DefaultWidth = 120

// FormatOption configures formatting behavior.
type FormatOption func(*formatConfig)

type formatConfig struct {
	width       int
	tables      bool
	frontMatter bool
}

func defaultConfig() formatConfig {
	return formatConfig{
		width:       DefaultWidth,
		tables:      true,
		frontMatter: true,
	}
}

func buildConfig(opts []FormatOption) formatConfig {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.width <= 0 {
		cfg.width = DefaultWidth
	}
	return cfg
}

// WithWidth sets the maximum line width in bytes. Values <= 0 select DefaultWidth.
func WithWidth(width int) FormatOption {
	return func(cfg *formatConfig) {
		cfg.width = width
	}
}

// WithTableConversion enables or disables converting wide pipe tables to HTML.
func WithTableConversion(enabled bool) FormatOption {
	return func(cfg *formatConfig) {
		cfg.tables = enabled
	}
}

// WithFrontMatter enables or disables passing a leading front matter block
// through untouched.
func WithFrontMatter(enabled bool) FormatOption {
	return func(cfg *formatConfig) {
		cfg.frontMatter = enabled
	}
}
