//go:build !linux

package doorbell

// New returns a Noop when nothing is configured and ErrNotSupported otherwise.
func New(cfg Config, bell Raiser) (Source, error) {
	if cfg.Type == "" {
		return &Noop{}, nil
	}
	return nil, ErrNotSupported
}
