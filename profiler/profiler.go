package profiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrCooldown is returned when a capture was started too recently
	ErrCooldown = errors.New("capture on cooldown")
	// ErrBusy is returned while another capture is running
	ErrBusy = errors.New("already profiling")
)

// Option configures a Profiler
type Option func(*Profiler)

// WithCooldown sets the minimum time between asynchronous captures
func WithCooldown(d time.Duration) Option {
	return func(p *Profiler) { p.captureCooldown = d }
}

// WithCaptureDuration sets how long an asynchronous capture records
func WithCaptureDuration(d time.Duration) Option {
	return func(p *Profiler) { p.captureDuration = d }
}

// Profiler captures CPU profiles and execution traces when frame rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
	logger          *zap.Logger

	// done is closed by the running asynchronous capture
	done chan struct{}
}

// New creates a profiler writing into dir, creating it if needed
func New(dir string, logger *zap.Logger, opts ...Option) (*Profiler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("profiles dir: %w", err)
	}
	p := &Profiler{
		captureCooldown: 10 * time.Second,
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
		logger:          logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Dir returns the directory profiles are written to
func (p *Profiler) Dir() string { return p.profilesDir }

func baseName(reason string) string {
	return fmt.Sprintf("fps-drop-%s-%s", time.Now().Format("20060102-150405.000"), reason)
}

// Capture starts a CPU profile and trace in the background. It returns
// immediately; Wait blocks until the capture finishes.
func (p *Profiler) Capture(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return ErrBusy
	}
	if since := time.Since(p.lastCaptureTime); since < p.captureCooldown {
		return fmt.Errorf("%w: last capture was %v ago", ErrCooldown, since.Round(time.Millisecond))
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	p.done = make(chan struct{})
	name := baseName(reason)

	go func(done chan struct{}) {
		defer close(done)
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()
		if err := p.capture(name, p.captureDuration); err != nil {
			p.logger.Warn("profile capture failed", zap.Error(err))
		}
	}(p.done)
	return nil
}

// Wait blocks until the running asynchronous capture, if any, completes
func (p *Profiler) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// CaptureSync records a CPU profile and trace for d and blocks until both
// files are written
func (p *Profiler) CaptureSync(reason string, d time.Duration) error {
	p.mu.Lock()
	if p.isProfiling {
		p.mu.Unlock()
		return ErrBusy
	}
	p.isProfiling = true
	p.lastCaptureTime = time.Now()
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.isProfiling = false
		p.mu.Unlock()
	}()
	return p.capture(baseName(reason), d)
}

// IsProfiling reports whether a capture is in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// capture runs the CPU profile and trace in parallel
func (p *Profiler) capture(name string, d time.Duration) error {
	var wg sync.WaitGroup
	var cpuErr, traceErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		cpuErr = p.captureCPUProfile(name, d)
	}()
	go func() {
		defer wg.Done()
		traceErr = p.captureTrace(name, d)
	}()
	wg.Wait()

	if err := errors.Join(cpuErr, traceErr); err != nil {
		return err
	}
	p.summarize(name)
	return nil
}

func (p *Profiler) captureCPUProfile(name string, d time.Duration) error {
	path := filepath.Join(p.profilesDir, name+".cpu.prof")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("start cpu profile: %w", err)
	}
	time.Sleep(d)
	pprof.StopCPUProfile()

	p.logger.Info("cpu profile saved", zap.String("path", path))
	return nil
}

func (p *Profiler) captureTrace(name string, d time.Duration) error {
	path := filepath.Join(p.profilesDir, name+".trace")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("start trace: %w", err)
	}
	time.Sleep(d)
	trace.Stop()

	p.logger.Info("trace saved", zap.String("path", path))
	return nil
}

// summarize logs the profile size and memory stats at capture time
func (p *Profiler) summarize(name string) {
	path := filepath.Join(p.profilesDir, name+".cpu.prof")
	info, err := os.Stat(path)
	if err != nil {
		p.logger.Warn("could not stat profile", zap.Error(err))
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info("profile captured",
		zap.String("profile", path),
		zap.Int64("size_bytes", info.Size()),
		zap.String("view", "go tool pprof -http=:8080 "+path),
		zap.Uint64("alloc_kb", m.Alloc/1024),
		zap.Uint64("sys_kb", m.Sys/1024),
		zap.Uint32("num_gc", m.NumGC),
		zap.Uint64("heap_objects", m.HeapObjects),
	)
}
