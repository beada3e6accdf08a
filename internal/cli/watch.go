package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/yildizm/CodeSum/internal/explainer"
	"github.com/yildizm/CodeSum/internal/logger"
)

var (
	watchQuery    string
	watchGlob     string
	watchDebounce time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-explain files as they change",
		Long: `Watch a file or directory and resubmit changed files to the code
explainer service.

Each save triggers a fresh explanation after a short debounce. Changes
arriving while a request is in flight are dropped. When watching a
directory, --glob limits which files trigger a run. Press Ctrl+C to
stop watching.

Examples:
  codesum watch main.go
  codesum watch --glob "*.go" ./src
  codesum watch -q "did the locking change" store.go`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchQuery, "query", "q", "", "question to ask about changed files")
	cmd.Flags().StringVar(&watchGlob, "glob", "", "only react to files matching this pattern")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "delay before resubmitting after a change")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	// Use config values if flags weren't explicitly set
	if !cmd.Flag("debounce").Changed {
		watchDebounce = cfg.Watch.Debounce
	}
	if watchGlob == "" {
		watchGlob = cfg.Watch.Glob
	}

	session, err := newWatchSession(args[0])
	if err != nil {
		return err
	}
	defer session.close()

	return session.run()
}

// watchSession holds the watcher state for one watch run
type watchSession struct {
	watcher *fsnotify.Watcher
	ctrl    *explainer.Controller
	matcher glob.Glob
	target  string
	isDir   bool
	log     *logger.Logger
}

func newWatchSession(target string) (*watchSession, error) {
	info, err := validateWatchPath(target)
	if err != nil {
		return nil, fmt.Errorf("invalid watch path: %w", err)
	}
	cleanTarget := filepath.Clean(target)

	matcher, err := compileWatchGlob(watchGlob)
	if err != nil {
		return nil, err
	}

	cfg := GetGlobalConfig()
	client, err := explainer.NewClient(&explainer.Config{
		Endpoint:    cfg.API.Endpoint,
		Timeout:     cfg.API.Timeout,
		MaxFileSize: cfg.API.MaxFileSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	watcher, err := createWatcher(cleanTarget)
	if err != nil {
		return nil, err
	}

	return &watchSession{
		watcher: watcher,
		ctrl:    explainer.NewController(client),
		matcher: matcher,
		target:  cleanTarget,
		isDir:   info.IsDir(),
		log:     getLogger("watch"),
	}, nil
}

// createWatcher creates and configures a new file system watcher
func createWatcher(target string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(target); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch %s: %w", target, err)
	}

	return watcher, nil
}

// compileWatchGlob compiles the filename filter. An empty pattern
// matches everything.
func compileWatchGlob(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return matcher, nil
}

// matches reports whether a changed path should trigger a run
func (s *watchSession) matches(path string) bool {
	if s.matcher == nil {
		return true
	}
	return s.matcher.Match(filepath.Base(path))
}

// run is the main watch loop with signal handling
func (s *watchSession) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching: %s\n", s.target)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	results := make(chan explainer.Snapshot, 1)

	var pending string
	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	// Explain the watched file once before waiting for changes
	if !s.isDir {
		s.submit(ctx, s.target, results)
	}

	for {
		select {
		case <-signals:
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nReceived interrupt signal, stopping...\n")
			}
			return nil

		case event, ok := <-s.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !s.matches(event.Name) {
				continue
			}
			pending = event.Name
			resetTimer(debounce, watchDebounce)

		case <-debounce.C:
			if pending != "" {
				s.submit(ctx, pending, results)
				pending = ""
			}

		case snap := <-results:
			s.report(snap)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			s.log.Warn("watcher error: %v", err)
		}
	}
}

// submit stages one file and starts a request unless one is already
// in flight
func (s *watchSession) submit(ctx context.Context, path string, results chan<- explainer.Snapshot) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the watched tree
	if err != nil {
		fmt.Printf("%s %s: %v\n", GetEmoji("error"), filepath.Base(path), err)
		return
	}

	s.ctrl.SetQuery(resolveWatchQuery(path))
	s.ctrl.SetFile(filepath.Base(path), data)

	snap, ok := s.ctrl.StartSubmit()
	if !ok {
		if snap.State == explainer.StateLoading {
			s.log.Debug("request in flight, dropping change to %s", filepath.Base(path))
		} else if snap.Err != nil {
			fmt.Printf("%s %s: %v\n", GetEmoji("error"), filepath.Base(path), snap.Err)
		}
		return
	}

	s.log.DebugWithFields("submitted", []logger.Field{
		logger.Path(path),
		logger.Size(int64(len(data))),
	})

	go func() {
		results <- s.ctrl.FinishSubmit(ctx)
	}()
}

// report prints a one-line summary for a settled run
func (s *watchSession) report(snap explainer.Snapshot) {
	timestamp := time.Now().Format("15:04:05")

	if snap.State != explainer.StateSucceeded {
		fmt.Printf("[%s] %s %v\n", timestamp, GetStateEmoji(snap.State), snap.Err)
		return
	}

	stats := explainer.ComputeFanStats(&snap.Result.Analysis)
	fmt.Printf("[%s] %s %d functions, %d entry points %s\n",
		timestamp, GetStateEmoji(snap.State), stats.Functions, stats.EntryPoints,
		CreateShareBar(entryShare(stats)))

	if isVerbose() {
		fmt.Println()
		fmt.Println(snap.Result.Explanation.OverallAnalysis)
		for _, ranked := range explainer.TopFunctions(&snap.Result.Analysis, 3) {
			fmt.Printf("  %s %s (%d connections)\n",
				GetFunctionEmoji(&ranked.Function), ranked.Function.Name, ranked.Connectivity())
		}
		fmt.Println()
	}
}

// resolveWatchQuery picks the query for a changed file
func resolveWatchQuery(path string) string {
	if strings.TrimSpace(watchQuery) != "" {
		return watchQuery
	}
	if configured := GetGlobalConfig().API.DefaultQuery; strings.TrimSpace(configured) != "" {
		return configured
	}
	return explainer.DefaultQuery(path)
}

// entryShare returns the entry-point fraction of all functions
func entryShare(stats *explainer.FanStats) float64 {
	if stats.Functions == 0 {
		return 0
	}
	return float64(stats.EntryPoints) / float64(stats.Functions)
}

// resetTimer drains and restarts a debounce timer
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func (s *watchSession) close() {
	cleanupWatcher(s.watcher)
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// validateWatchPath validates that a path is safe to watch
func validateWatchPath(path string) (os.FileInfo, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	// Check for path traversal attempts
	if strings.Contains(cleanPath, "..") {
		return nil, fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access path: %w", err)
	}

	return info, nil
}
