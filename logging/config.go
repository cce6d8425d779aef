package logging

import "time"

const (
	SinkConsole = "console"
	SinkJSON    = "json"
)

type Config struct {
	EnabledSinks     []string       `yaml:"sinks"`
	BufferSize       int            `yaml:"bufferSize"`
	MinimumSeverity  Severity       `yaml:"minimumSeverity"`
	Fields           map[string]any `yaml:"fields"`
	JSON             JSONConfig     `yaml:"json"`
	DropWarnInterval time.Duration  `yaml:"dropWarnInterval"`

	// SinkCategories restricts a sink to the listed event categories. Sinks
	// without an entry receive every category.
	SinkCategories map[string][]string `yaml:"sinkCategories"`
}

type JSONConfig struct {
	FilePath      string        `yaml:"path"`
	FlushInterval time.Duration `yaml:"flushInterval"`
}

func DefaultConfig() Config {
	return Config{
		EnabledSinks:     []string{SinkConsole},
		BufferSize:       512,
		MinimumSeverity:  SeverityInfo,
		DropWarnInterval: 5 * time.Second,
		JSON: JSONConfig{
			FlushInterval: 2 * time.Second,
		},
	}
}

func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c Config) categoriesFor(sink string) map[string]bool {
	allowed, ok := c.SinkCategories[sink]
	if !ok {
		return nil
	}
	set := make(map[string]bool, len(allowed))
	for _, category := range allowed {
		set[category] = true
	}
	return set
}

func (c Config) CloneFields() map[string]any {
	if len(c.Fields) == 0 {
		return nil
	}
	cloned := make(map[string]any, len(c.Fields))
	for k, v := range c.Fields {
		cloned[k] = v
	}
	return cloned
}
