package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/phrazzld/kanban-api/internal/board"
	"github.com/phrazzld/kanban-api/internal/client"
	"github.com/phrazzld/kanban-api/internal/prefs"
)

// session is a loaded board plus the user's preferences.
type session struct {
	opts       *options
	reconciler *board.Reconciler
	prefs      *prefs.Preferences
}

// openSession loads preferences and the board and starts the reconciler.
func openSession(ctx context.Context, opts *options) (*session, error) {
	p, err := loadPrefs(opts)
	if err != nil {
		return nil, err
	}

	api := client.New(opts.apiURL,
		client.WithTimeout(opts.timeout),
		client.WithLogger(opts.logger))
	r := board.NewReconciler(api, board.NewState(), board.Config{}, opts.logger)
	r.Start()

	if err := r.Load(ctx); err != nil {
		r.Close()
		return nil, fmt.Errorf("load board from %s: %w", api.BaseURL(), err)
	}

	return &session{opts: opts, reconciler: r, prefs: p}, nil
}

func (s *session) close() {
	s.reconciler.Close()
}

// apply runs one intent and renders the resulting board.
func (s *session) apply(ctx context.Context, intent board.Intent) error {
	res, err := s.reconciler.Do(ctx, intent)
	if err != nil {
		return err
	}
	if res.ID > 0 {
		s.opts.logger.Debug("intent persisted", "id", res.ID)
	}
	s.render()
	return nil
}

func (s *session) render() {
	fmt.Fprintln(s.opts.out, Render(s.reconciler.State().Snapshot(), ThemeFor(s.prefs)))
}

// withSession opens a session for the duration of fn.
func withSession(ctx context.Context, opts *options, fn func(*session) error) error {
	s, err := openSession(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func loadPrefs(opts *options) (*prefs.Preferences, error) {
	path, err := prefsPath(opts)
	if err != nil {
		return nil, err
	}
	p, err := prefs.Load(path)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func prefsPath(opts *options) (string, error) {
	if opts.prefsPath != "" {
		return opts.prefsPath, nil
	}
	return prefs.DefaultPath()
}

// parseID parses a positive entity ID argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
