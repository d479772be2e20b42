// Package container provides dependency injection for the gift-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"path/filepath"

	"gift-ledger/internal/config"
	"gift-ledger/internal/csvio"
	"gift-ledger/internal/dateutils"
	"gift-ledger/internal/fileutils"
	"gift-ledger/internal/logging"
	"gift-ledger/internal/normalizer"
	"gift-ledger/internal/session"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation; fields are reached through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	clock      dateutils.Clock
	normalizer *normalizer.Normalizer
	importer   *csvio.Importer
	exporter   *csvio.Exporter
}

// Option overrides a default dependency.
type Option func(*Container)

// WithLogger replaces the logger built from the config.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) { c.logger = logger }
}

// WithClock replaces the system clock.
func WithClock(clock dateutils.Clock) Option {
	return func(c *Container) { c.clock = clock }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{config: cfg, clock: dateutils.SystemClock}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = config.ConfigureLogging(cfg)
	}

	delimiter := cfg.Delimiter()
	c.normalizer = normalizer.New(c.clock, c.logger)
	c.importer = csvio.NewImporter(delimiter, c.normalizer, c.logger)
	c.exporter = csvio.NewExporter(delimiter, c.logger)

	c.logger.Debug("Container initialized",
		logging.F(logging.FieldFile, cfg.Data.File),
		logging.F(logging.FieldDelimiter, string(delimiter)))

	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetNormalizer returns the shared normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetImporter returns the CSV importer.
func (c *Container) GetImporter() *csvio.Importer {
	return c.importer
}

// GetExporter returns the CSV exporter.
func (c *Container) GetExporter() *csvio.Exporter {
	return c.exporter
}

// NewSession returns a session over an empty ledger.
func (c *Container) NewSession() *session.Session {
	return session.New(c.normalizer, c.importer, c.exporter, c.logger)
}

// OpenSession returns a session loaded from the configured ledger file. A
// missing file yields an empty ledger.
func (c *Container) OpenSession() (*session.Session, error) {
	s := c.NewSession()
	path := c.config.Data.File
	if !fileutils.FileExists(path) {
		c.logger.Debug("Ledger file not found, starting empty", logging.F(logging.FieldFile, path))
		return s, nil
	}
	if err := s.ImportFile(path); err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	c.logger.Debug("Ledger loaded",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, s.Ledger().Len()))
	return s, nil
}

// SaveSession writes the full ledger back to the configured file.
func (c *Container) SaveSession(s *session.Session) error {
	path := c.config.Data.File
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	if err := s.ExportFile(path); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	c.logger.Debug("Ledger saved",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, s.Ledger().Len()))
	return nil
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
