package history

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/chat"
)

// Fetcher is the transport boundary: one call per resource, cancellable,
// failures classified into api error kinds. Implemented by client.Client.
type Fetcher interface {
	GetThread(ctx context.Context, roomID, threadID string) (*api.ThreadResponse, error)
	GetRun(ctx context.Context, roomID, threadID, runID string) (*api.RunResponse, error)
}

// WarnFunc is notified when a run is skipped under the partial-failure
// policy. Invoked synchronously, after all fetches have settled.
type WarnFunc func(threadID, runID, reason string)

// Transcript is the chronological, fully-reduced message list for a thread.
type Transcript struct {
	RoomID   string         `json:"room_id"`
	ThreadID string         `json:"thread_id"`
	Messages []chat.Message `json:"messages"`
}

// Service reconstructs thread transcripts. The run cache is shared across
// calls and threads; everything else is per-call.
type Service struct {
	fetcher Fetcher
	cache   *RunCache
	warn    WarnFunc
}

// Option is a function for configuring the Service
type Option func(*Service)

// WithWarnFunc installs a hook invoked for every run skipped under the
// partial-failure policy.
func WithWarnFunc(warn WarnFunc) Option {
	return func(s *Service) {
		s.warn = warn
	}
}

// WithCacheSize bounds the run cache at size entries.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cache = NewRunCache(size)
	}
}

// NewService creates a transcript service on top of a fetcher.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		cache:   NewRunCache(DefaultCacheSize),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Close releases the service's cached state.
func (s *Service) Close() {
	s.cache.Clear()
}

// GetThreadMessages returns just the transcript's message list.
func (s *Service) GetThreadMessages(ctx context.Context, roomID, threadID string) ([]chat.Message, error) {
	transcript, err := s.GetThreadHistory(ctx, roomID, threadID)
	if err != nil {
		return nil, err
	}
	return transcript.Messages, nil
}

// GetThreadHistory fetches the run registry for a thread, resolves every
// completed run (cache first, then concurrent fetches), and concatenates
// each run's input messages and reduced events in run creation order.
//
// A run that fails with a not-found or network error is skipped with a
// warning; auth, server and cancellation failures abort the whole call.
func (s *Service) GetThreadHistory(ctx context.Context, roomID, threadID string) (*Transcript, error) {
	if roomID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "room id must not be empty")
	}
	if threadID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "thread id must not be empty")
	}

	slog.Debug("Fetching thread history", "room_id", roomID, "thread_id", threadID)

	thread, err := s.fetcher.GetThread(ctx, roomID, threadID)
	if err != nil {
		return nil, err
	}

	resolved := make(map[string]*api.RunResponse)
	var completed []api.RunInfo
	var missing []api.RunInfo

	for id, info := range thread.Runs {
		if info.RunID == "" {
			info.RunID = id
		}
		if info.Finished == nil {
			slog.Debug("Skipping run still in progress", "run_id", info.RunID)
			continue
		}

		completed = append(completed, info)
		if run, ok := s.cache.Get(info.RunID); ok {
			resolved[info.RunID] = run
		} else {
			missing = append(missing, info)
		}
	}

	type fetchResult struct {
		runID string
		run   *api.RunResponse
		err   error
	}

	results := make([]fetchResult, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, info := range missing {
		i, info := i, info
		g.Go(func() error {
			run, err := s.fetcher.GetRun(gctx, roomID, threadID, info.RunID)
			if err != nil {
				switch api.KindOf(err) {
				case api.ErrorKindNotFound, api.ErrorKindNetwork:
					// Recovered locally: one flaky run must not sink
					// the whole transcript.
					results[i] = fetchResult{runID: info.RunID, err: err}
					return nil
				default:
					return err
				}
			}
			results[i] = fetchResult{runID: info.RunID, run: run}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.err != nil {
			slog.Warn("Skipping failed run",
				"thread_id", threadID,
				"run_id", result.runID,
				"error", result.err)
			if s.warn != nil {
				s.warn(threadID, result.runID, result.err.Error())
			}
			continue
		}
		s.cache.Put(result.runID, result.run)
		resolved[result.runID] = result.run
	}

	// Chronological merge. Creation-time ties are broken by run id so the
	// ordering never depends on map iteration or fetch completion order.
	sort.Slice(completed, func(i, j int) bool {
		if !completed[i].Created.Equal(completed[j].Created) {
			return completed[i].Created.Before(completed[j].Created)
		}
		return completed[i].RunID < completed[j].RunID
	})

	var messages []chat.Message
	for _, info := range completed {
		run, ok := resolved[info.RunID]
		if !ok {
			continue
		}
		messages = append(messages, ExtractInput(run.RunInput, info.Created)...)
		messages = append(messages, Reduce(run.Events, info.Created)...)
	}

	slog.Debug("Thread history assembled",
		"thread_id", threadID,
		"runs", len(completed),
		"messages", len(messages))

	return &Transcript{
		RoomID:   roomID,
		ThreadID: threadID,
		Messages: messages,
	}, nil
}
