// Package pitchside is the Go SDK for the Pitchside football social
// platform. It wires the session layer (credential store, session
// manager, request dispatchers) to typed feature clients for the
// backend and the standalone video analyzer.
//
// Typical use:
//
//	sdk, err := pitchside.New()
//	if err != nil { ... }
//	if _, err := sdk.Session.Bootstrap(ctx); err != nil { ... }
//	feed, err := sdk.Posts.Feed(ctx, 20, 1)
package pitchside

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pitchside/pitchside-go/analyzer"
	"github.com/pitchside/pitchside-go/auth"
	"github.com/pitchside/pitchside-go/coaching"
	"github.com/pitchside/pitchside-go/credstore"
	"github.com/pitchside/pitchside-go/health"
	"github.com/pitchside/pitchside-go/injury"
	"github.com/pitchside/pitchside-go/internal/config"
	"github.com/pitchside/pitchside-go/internal/logging"
	"github.com/pitchside/pitchside-go/matches"
	"github.com/pitchside/pitchside-go/performance"
	"github.com/pitchside/pitchside-go/posts"
	"github.com/pitchside/pitchside-go/session"
	"github.com/pitchside/pitchside-go/transport"
	"github.com/pitchside/pitchside-go/users"
	"github.com/pitchside/pitchside-go/wellness"
)

// Client is the assembled SDK. All feature clients share one
// authenticated dispatcher; Analyzer rides its own unauthenticated one.
type Client struct {
	Session *session.Manager

	Auth        *auth.Client
	Users       *users.Client
	Posts       *posts.Client
	Matches     *matches.Client
	Wellness    *wellness.Client
	Injury      *injury.Client
	Performance *performance.Client
	Coaching    *coaching.Client
	Health      *health.Client
	Analyzer    *analyzer.Client
}

type settings struct {
	backendURL  string
	analyzerURL string
	store       credstore.Store
	log         *zerolog.Logger
	logDest     io.Writer
	httpOpts    []transport.Option
}

// Option configures the SDK constructor.
type Option func(*settings)

// WithBackendURL overrides the primary backend address from the
// environment.
func WithBackendURL(u string) Option {
	return func(s *settings) {
		s.backendURL = u
	}
}

// WithAnalyzerURL overrides the analyzer service address.
func WithAnalyzerURL(u string) Option {
	return func(s *settings) {
		s.analyzerURL = u
	}
}

// WithStore replaces the file-backed credential store, e.g. with
// credstore.NewMemStore in tests.
func WithStore(store credstore.Store) Option {
	return func(s *settings) {
		s.store = store
	}
}

// WithLogger sets the logger used across the SDK.
func WithLogger(log zerolog.Logger) Option {
	return func(s *settings) {
		s.log = &log
	}
}

// WithLogOutput redirects the default logger's output.
func WithLogOutput(w io.Writer) Option {
	return func(s *settings) {
		s.logDest = w
	}
}

// WithTransportOptions appends options applied to both dispatchers.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(s *settings) {
		s.httpOpts = append(s.httpOpts, opts...)
	}
}

// New assembles the SDK from the environment and the given options.
func New(opts ...Option) (*Client, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "[pitchside.New] load config")
	}
	if s.backendURL != "" {
		cfg.BackendURL = s.backendURL
	}
	if s.analyzerURL != "" {
		cfg.AnalyzerURL = s.analyzerURL
	}

	var log zerolog.Logger
	if s.log != nil {
		log = *s.log
	} else {
		dest := s.logDest
		if dest == nil {
			dest = os.Stderr
		}
		log = logging.New(dest, cfg.LogLevel)
	}

	store := s.store
	if store == nil {
		fileStore, err := credstore.NewFileStore(cfg.TokenPath)
		if err != nil {
			return nil, errors.Wrap(err, "[pitchside.New] credential store")
		}
		store = fileStore
	}

	baseOpts := append([]transport.Option{
		transport.WithLogger(log),
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithUploadTimeout(cfg.UploadTimeout),
	}, s.httpOpts...)

	backend, err := transport.New(cfg.BackendURL, baseOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[pitchside.New] backend dispatcher")
	}
	analyzerTransport, err := transport.New(cfg.AnalyzerURL, baseOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "[pitchside.New] analyzer dispatcher")
	}

	authClient, err := auth.New(backend)
	if err != nil {
		return nil, err
	}
	manager, err := session.NewManager(store, authClient, session.WithLogger(log))
	if err != nil {
		return nil, err
	}

	// The backend dispatcher reads its token from the manager at
	// dispatch time. The analyzer dispatcher stays unbound.
	backend.Bind(manager)

	c := &Client{Session: manager, Auth: authClient}
	if c.Users, err = users.New(backend); err != nil {
		return nil, err
	}
	if c.Posts, err = posts.New(backend); err != nil {
		return nil, err
	}
	if c.Matches, err = matches.New(backend); err != nil {
		return nil, err
	}
	if c.Wellness, err = wellness.New(backend); err != nil {
		return nil, err
	}
	if c.Injury, err = injury.New(backend); err != nil {
		return nil, err
	}
	if c.Performance, err = performance.New(backend); err != nil {
		return nil, err
	}
	if c.Coaching, err = coaching.New(backend); err != nil {
		return nil, err
	}
	if c.Health, err = health.New(backend); err != nil {
		return nil, err
	}
	if c.Analyzer, err = analyzer.New(analyzerTransport); err != nil {
		return nil, err
	}
	return c, nil
}

// Ptr returns a pointer to v, for the optional-field params used by
// profile updates.
func Ptr[T any](v T) *T {
	return &v
}

// Value dereferences p, returning the zero value for nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
