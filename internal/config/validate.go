package config

import (
	"errors"
	"fmt"
)

func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Collector.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Snaps.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Tabular.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.TaskQueue.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %w", errors.Join(errs...))
	}
	return nil
}
