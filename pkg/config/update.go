package config

// Update applies Option functions to the Config in order. Later options
// win over earlier ones; invalid options are ignored with a warning and
// leave the config unchanged.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}
