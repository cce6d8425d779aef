package sim

import "legend-of-kiro/internal/world"

// Config selects the session variant.
type Config struct {
	// AutoStart skips the start screen: new and restarted sessions begin
	// running immediately.
	AutoStart  bool             `yaml:"autoStart"`
	Population world.Population `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{Population: world.DefaultPopulation()}
}

func (c Config) normalized() Config {
	if c.Population.Empty() {
		c.Population = world.DefaultPopulation()
	}
	return c
}
