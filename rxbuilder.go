// Package rxbuilder turns a sample line of text into a regular expression.
//
// A Builder scans text with a catalog of recognizers (IP addresses, dates,
// UUIDs, log levels, numbers, words). Each recognizer pairs a detection
// pattern with the fragment it contributes to the output. The caller picks
// which interpretations to keep and the composer escapes everything else.
//
// # Basic Usage
//
// Compose a pattern with the best non-overlapping interpretations:
//
//	b, err := rxbuilder.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	p := b.AutoCompose("Server 192.168.1.1 responded", rxbuilder.Options{})
//	fmt.Println(p.Body) // Server\ (?:\d{1,3}\.){3}\d{1,3}\ responded
//
// # Interactive Sessions
//
// A Session keeps the text, its matches and the user's selections across
// edits:
//
//	s := b.NewSession()
//	s.SetText("2024-01-15 ERROR disk full")
//	for _, m := range s.Candidates(0) {
//	    fmt.Println(m.Key())
//	}
//	if _, err := s.Select(0, 10, "time.date"); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(s.Compose().Body)
package rxbuilder

import (
	"fmt"
	"time"

	"github.com/praetorian-inc/rxbuilder/pkg/catalog"
	"github.com/praetorian-inc/rxbuilder/pkg/composer"
	"github.com/praetorian-inc/rxbuilder/pkg/scanner"
	"github.com/praetorian-inc/rxbuilder/pkg/session"
	"github.com/praetorian-inc/rxbuilder/pkg/types"
	"go.uber.org/zap"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/praetorian-inc/rxbuilder" without subpackages.
type (
	// Recognizer pairs a detection pattern with an emitted fragment.
	Recognizer = types.Recognizer

	// Match is one located occurrence of a recognizer in the text.
	Match = types.Match

	// Selection is a chosen match kept across text edits.
	Selection = types.Selection

	// Options controls composition output.
	Options = types.Options

	// Pattern is a composed body plus its flags.
	Pattern = composer.Pattern

	// Session holds one text being edited and its selections.
	Session = session.Session

	// OverlapError reports the selections blocking a new one.
	OverlapError = types.OverlapError
)

// Re-export the error taxonomy.
var (
	ErrConfig             = types.ErrConfig
	ErrOverlapConflict    = types.ErrOverlapConflict
	ErrInvalidPattern     = types.ErrInvalidPattern
	ErrScanBudgetExceeded = types.ErrScanBudgetExceeded
	ErrSelectionNotFound  = types.ErrSelectionNotFound
	ErrMatchNotFound      = types.ErrMatchNotFound
)

// Builder scans text and creates sessions over one recognizer catalog.
// A Builder is read-only after NewBuilder and safe for concurrent use;
// the sessions it creates are not.
type Builder struct {
	catalog *catalog.Catalog
	scanner *scanner.Scanner
	config  *builderConfig
}

// builderConfig holds builder configuration.
type builderConfig struct {
	recognizers        []*Recognizer
	budget             time.Duration
	logger             *zap.Logger
	options            Options
	autoSelectPriority int
}

// Option configures a Builder.
type Option func(*builderConfig)

// WithRecognizers uses custom recognizers instead of the builtin catalog.
func WithRecognizers(recognizers []*Recognizer) Option {
	return func(c *builderConfig) {
		c.recognizers = recognizers
	}
}

// WithBudget sets the per-recognizer execution budget. Default is 25ms.
func WithBudget(d time.Duration) Option {
	return func(c *builderConfig) {
		c.budget = d
	}
}

// WithLogger sets the logger passed to scanners and sessions.
func WithLogger(l *zap.Logger) Option {
	return func(c *builderConfig) {
		c.logger = l
	}
}

// WithDefaultOptions sets the composition options new sessions start with.
func WithDefaultOptions(o Options) Option {
	return func(c *builderConfig) {
		c.options = o
	}
}

// WithAutoSelectPriority sets the lowest recognizer priority AutoSelect picks.
func WithAutoSelectPriority(p int) Option {
	return func(c *builderConfig) {
		c.autoSelectPriority = p
	}
}

// NewBuilder creates a Builder with the given options.
//
// By default, the builder:
//   - Uses the builtin recognizer catalog
//   - Gives each recognizer a 25ms budget per scan
//   - Auto-selects recognizers with priority 40 and above
func NewBuilder(opts ...Option) (*Builder, error) {
	config := &builderConfig{
		budget:             scanner.DefaultBudget,
		logger:             zap.NewNop(),
		autoSelectPriority: session.DefaultAutoSelectPriority,
	}

	for _, opt := range opts {
		opt(config)
	}

	var (
		cat *catalog.Catalog
		err error
	)
	if config.recognizers == nil {
		cat, err = catalog.Builtin()
	} else {
		cat, err = catalog.New(config.recognizers)
	}
	if err != nil {
		return nil, fmt.Errorf("loading recognizers: %w", err)
	}

	sc, err := scanner.New(cat,
		scanner.WithBudget(config.budget),
		scanner.WithLogger(config.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("creating scanner: %w", err)
	}

	return &Builder{
		catalog: cat,
		scanner: sc,
		config:  config,
	}, nil
}

// Scan returns every match in text, ordered by start offset.
func (b *Builder) Scan(text string) []*Match {
	return b.scanner.Scan(text)
}

// ScanDetailed scans text and reports per-recognizer statistics.
func (b *Builder) ScanDetailed(text string) *scanner.Result {
	return b.scanner.ScanDetailed(text)
}

// NewSession starts a session with empty text and the default options.
func (b *Builder) NewSession() *Session {
	return session.New(b.scanner,
		session.WithLogger(b.config.logger),
		session.WithOptions(b.config.options),
		session.WithAutoSelectPriority(b.config.autoSelectPriority),
	)
}

// AutoCompose scans text, selects the best non-overlapping matches and
// returns the composed pattern.
func (b *Builder) AutoCompose(text string, opts Options) Pattern {
	s := b.NewSession()
	s.SetOptions(opts)
	s.SetText(text)
	s.AutoSelect()
	return s.Compose()
}

// RecognizerCount returns the number of recognizers loaded.
func (b *Builder) RecognizerCount() int {
	return b.catalog.Len()
}

// Recognizers returns the loaded recognizers in catalog order.
func (b *Builder) Recognizers() []*Recognizer {
	return b.catalog.All()
}

// Compose assembles text and selections into a pattern. It is the pure
// function behind Session.Compose, for callers that manage selections
// themselves.
func Compose(text string, selections []*Selection, opts Options) Pattern {
	return composer.Build(text, selections, opts)
}

// LoadRecognizersFromFile loads recognizers from a YAML file.
// Use this with WithRecognizers to create a builder with a custom catalog.
func LoadRecognizersFromFile(path string) ([]*Recognizer, error) {
	return catalog.NewLoader().LoadFile(path)
}

// LoadBuiltinRecognizers returns the builtin recognizers.
// This can be used to inspect them or build a subset.
//
// Example:
//
//	recognizers, err := rxbuilder.LoadBuiltinRecognizers()
//	if err != nil {
//	    return err
//	}
//
//	// Keep only network recognizers
//	var network []*rxbuilder.Recognizer
//	for _, r := range recognizers {
//	    if strings.HasPrefix(r.ID, "net.") {
//	        network = append(network, r)
//	    }
//	}
//	b, err := rxbuilder.NewBuilder(rxbuilder.WithRecognizers(network))
func LoadBuiltinRecognizers() ([]*Recognizer, error) {
	return catalog.NewLoader().LoadBuiltin()
}
