// Package solver owns the SMT solver child process: a bidirectional,
// process-based protocol session that streams commands into the solver's
// stdin, parses its stdout asynchronously as a stream of S-expressions, and
// demultiplexes reply kinds for a cooperatively concurrent consumer
// (spec.md §4.B).
package solver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/boogiedrive/houdini/internal/sexpr"
)

// nextSessionID hands out the per-process numeric session IDs spec.md §3
// requires for logging, in creation order.
var nextSessionID atomic.Int64

// promise is a single outstanding await-response request. Exactly one of
// its three resolution paths (parsed reply, EOF/soft-null, process exit)
// ever writes to ch, guarded by once.
type promise struct {
	once sync.Once
	ch   chan promiseResult
}

type promiseResult struct {
	resp       sexpr.SExpr
	isNull     bool
	err        error
}

func (p *promise) resolve(res promiseResult) {
	p.once.Do(func() {
		p.ch <- res
	})
}

// Session owns one solver child process for the duration of a single batch
// VC check (spec.md §3 "Lifecycles").
type Session struct {
	ID    int64
	RunID string

	cmd    *exec.Cmd
	stdinW io.WriteCloser

	lines  *lineQueue
	reader *sexpr.Reader

	readMu sync.Mutex // serializes concurrent AwaitResponse calls

	mu       sync.Mutex
	pending  map[*promise]struct{}
	exited   bool
	exitErr  error

	logger    *log.Logger
	verbosity Verbosity
	inspector Inspector

	cpuNanos atomic.Int64 // accumulated child user CPU time, spec.md §9

	closeOnce sync.Once
}

// Options configures a new Session.
type Options struct {
	// Command and Args launch the solver, e.g. "z3" ["-in", "-smt2"].
	Command string
	Args    []string

	Logger    *log.Logger
	Verbosity Verbosity
	Inspector Inspector

	// ParseErrorHandler receives S-expression parse diagnostics
	// (spec.md §4.A "Failure modes"). May be nil.
	ParseErrorHandler func(msg string)
}

// Start launches the solver subprocess and begins draining its stdout and
// stderr in background goroutines.
func Start(ctx context.Context, opts Options) (*Session, error) {
	cmd := exec.CommandContext(ctx, opts.Command, opts.Args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &ProcessStartFailure{Command: opts.Command, Cause: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &ProcessStartFailure{Command: opts.Command, Cause: err}
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, &ProcessStartFailure{Command: opts.Command, Cause: err}
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	id := nextSessionID.Add(1)
	s := &Session{
		ID:        id,
		RunID:     ulid.Make().String(),
		cmd:       cmd,
		stdinW:    stdin,
		lines:     newLineQueue(),
		pending:   map[*promise]struct{}{},
		logger:    logger,
		verbosity: opts.Verbosity,
		inspector: opts.Inspector,
	}
	s.reader = sexpr.NewReader(lineQueueSource{s.lines}, opts.ParseErrorHandler)

	if err := cmd.Start(); err != nil {
		return nil, &ProcessStartFailure{Command: opts.Command, Cause: err}
	}

	go s.drainStdout(stdout)
	go s.drainStderr(stderr)
	go s.watchExit()

	globalInterruptRegistry.register(s)

	return s, nil
}

type lineQueueSource struct{ q *lineQueue }

func (l lineQueueSource) ReadLine() (string, error) {
	line, ok := l.q.Pop()
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (s *Session) drainStdout(r io.Reader) {
	src := sexpr.NewScannerLineSource(r)
	for {
		line, err := src.ReadLine()
		if err != nil {
			s.lines.Close()
			return
		}
		if s.verbosity >= VerbosityFull {
			s.logger.Printf("[solver#%d] <<< %s", s.ID, truncate(line))
		} else if s.verbosity >= VerbosityKinds {
			s.logger.Printf("[solver#%d] <<< %s", s.ID, commandKind(line))
		}
		s.lines.Push(line)
	}
}

func (s *Session) drainStderr(r io.Reader) {
	src := sexpr.NewScannerLineSource(r)
	for {
		line, err := src.ReadLine()
		if err != nil {
			return
		}
		s.logger.Printf("[solver#%d] stderr: %s", s.ID, line)
	}
}

func (s *Session) watchExit() {
	err := s.cmd.Wait()
	s.recordCPUTime()

	s.mu.Lock()
	s.exited = true
	s.exitErr = err
	pending := make([]*promise, 0, len(s.pending))
	for p := range s.pending {
		pending = append(pending, p)
	}
	s.mu.Unlock()

	for _, p := range pending {
		p.resolve(promiseResult{isNull: true})
	}
	s.lines.Close()
}

// recordCPUTime reads the child's reported user CPU time onto the session's
// atomic accumulator (spec.md §9 "Global mutable counter"). Failure to read
// it is warned and ignored.
func (s *Session) recordCPUTime() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("[solver#%d] warning: could not read child CPU time: %v", s.ID, r)
		}
	}()
	if s.cmd.ProcessState == nil {
		return
	}
	s.cpuNanos.Add(int64(s.cmd.ProcessState.UserTime()))
}

// UserCPUTime returns the accumulated child user CPU time recorded so far.
func (s *Session) UserCPUTime() time.Duration {
	return time.Duration(s.cpuNanos.Load())
}

// Send writes one command line to the solver's stdin (spec.md §4.B).
func (s *Session) Send(cmd string) error {
	s.mu.Lock()
	closed := s.stdinW == nil
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	if s.verbosity >= VerbosityFull {
		s.logger.Printf("[solver#%d] >>> %s", s.ID, truncate(cmd))
	} else if s.verbosity >= VerbosityKinds {
		s.logger.Printf("[solver#%d] >>> %s", s.ID, commandKind(cmd))
	}
	_, err := io.WriteString(s.stdinW, cmd+"\n")
	return err
}

// IndicateEndOfInput closes stdin and clears the writer reference, after
// which Send returns ErrSessionClosed (spec.md §4.B). Idempotent.
func (s *Session) IndicateEndOfInput() {
	s.mu.Lock()
	w := s.stdinW
	s.stdinW = nil
	s.mu.Unlock()
	if w != nil {
		_ = w.Close()
	}
}

// NewProblem resets solver state for a fresh named problem (used by the
// batch driver's "full reset" step).
func (s *Session) NewProblem(name string) error {
	return s.Send(fmt.Sprintf("(reset)\n(set-info :source |%s|)", name))
}

// AwaitResponse dequeues inbound lines through the S-expression reader
// until a full top-level reply is classified, following spec.md §4.B/§4.C.
// It resolves to (nil, nil) on EOF/soft-null, (nil, err) on a hard solver
// error, or (nil, ErrCancelled) if ctx is done before a reply arrives.
// Response parsing is not itself cancellable (spec.md §5): a cancellation
// only makes AwaitResponse return early, leaving the read in progress; the
// caller must Close the session afterward.
func (s *Session) AwaitResponse(ctx context.Context) (*sexpr.SExpr, error) {
	s.mu.Lock()
	if s.exited {
		s.mu.Unlock()
		return nil, nil
	}
	p := &promise{ch: make(chan promiseResult, 1)}
	s.pending[p] = struct{}{}
	s.mu.Unlock()

	go s.pump(p)

	select {
	case res := <-p.ch:
		s.mu.Lock()
		delete(s.pending, p)
		s.mu.Unlock()
		if res.err != nil {
			return nil, res.err
		}
		if res.isNull {
			return nil, nil
		}
		return &res.resp, nil
	case <-ctx.Done():
		return nil, ErrCancelled
	}
}

// pump performs the blocking read-classify loop for a single promise,
// serialized against concurrent callers by readMu (spec.md §5: "one
// pending await-response at a time per session").
func (s *Session) pump(p *promise) {
	s.readMu.Lock()
	defer s.readMu.Unlock()

	for {
		resp, err := s.reader.Next()
		if err == sexpr.ErrEOF {
			p.resolve(promiseResult{isNull: true})
			return
		}
		if err != nil {
			// Parse error: reported via the error handler already;
			// treat as "no reply" per spec.md §7 ParseError.
			p.resolve(promiseResult{isNull: true})
			return
		}

		kind, msg := classify(resp, s.inspector)
		switch kind {
		case classSwallowed:
			continue
		case classSoftNull:
			p.resolve(promiseResult{isNull: true})
			return
		case classError:
			// Hard failure: resolved as a Go error rather than spec.md
			// §4.C's literal "soft-null" wording, so AwaitResponse aborts
			// here and prover.classifyOutcome never sees this reply (its own
			// "error" case only ever receives the resource-limit one).
			p.resolve(promiseResult{err: &HardSolverError{Msg: msg}})
			return
		default:
			p.resolve(promiseResult{resp: resp})
			return
		}
	}
}

// Close terminates the child process and releases resources. Safe to call
// more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		globalInterruptRegistry.deregister(s)
		s.IndicateEndOfInput()
		if s.cmd.Process != nil {
			done := make(chan struct{})
			go func() {
				_ = s.cmd.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-time.After(drainTimeout):
				err = s.cmd.Process.Kill()
			}
		}
	})
	return err
}
