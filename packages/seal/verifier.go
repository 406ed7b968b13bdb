package seal

import (
	"fmt"
	"strings"
	"time"

	"github.com/iotaledger/hive.go/runtime/options"
)

// Result describes the outcome of a seal verification.
type Result struct {
	Valid bool
	// MatchedWindow is only meaningful if Valid is set.
	MatchedWindow int64
	// Offset of the matched window relative to the current one.
	Offset int
}

func (r Result) Message() string {
	if !r.Valid {
		return "scanned code mismatch, seal invalid or out of sync"
	}

	return fmt.Sprintf("dynamic seal valid (matched window %d)", r.MatchedWindow)
}

// Verifier checks seal codes against the current window and its neighbours.
type Verifier struct {
	windowLength time.Duration
	tolerance    int
	clock        func() time.Time
}

func NewVerifier(opts ...options.Option[Verifier]) *Verifier {
	return options.Apply(&Verifier{
		windowLength: DefaultWindowLength,
		tolerance:    DefaultTolerance,
		clock:        time.Now,
	}, opts, func(v *Verifier) {
		if v.windowLength < time.Millisecond {
			v.windowLength = DefaultWindowLength
		}
		if v.tolerance < 0 {
			v.tolerance = 0
		}
	})
}

// WithWindowLength sets the length of a seal window.
func WithWindowLength(length time.Duration) options.Option[Verifier] {
	return func(v *Verifier) {
		v.windowLength = length
	}
}

// WithTolerance sets how many windows before and after the current one are accepted.
func WithTolerance(windows int) options.Option[Verifier] {
	return func(v *Verifier) {
		v.tolerance = windows
	}
}

func WithClock(clock func() time.Time) options.Option[Verifier] {
	return func(v *Verifier) {
		v.clock = clock
	}
}

func (v *Verifier) WindowLength() time.Duration {
	return v.windowLength
}

func (v *Verifier) Tolerance() int {
	return v.tolerance
}

// CurrentWindow returns the window the verifier's clock is in.
func (v *Verifier) CurrentWindow() int64 {
	return WindowAt(v.clock(), v.windowLength)
}

// Generate returns the code a genuine seal displays right now.
func (v *Verifier) Generate(productID, seed string) (string, error) {
	if strings.TrimSpace(seed) == "" {
		return "", ErrMissingSeed
	}

	return Digest(productID, seed, v.CurrentWindow()).Hex(), nil
}

// Verify checks code against the windows now-tolerance .. now+tolerance in ascending order.
func (v *Verifier) Verify(productID, seed, code string) (Result, error) {
	if strings.TrimSpace(seed) == "" {
		return Result{}, ErrMissingSeed
	}

	provided, err := ParseCode(code)
	if err != nil {
		return Result{}, err
	}

	current := v.CurrentWindow()
	for offset := -v.tolerance; offset <= v.tolerance; offset++ {
		w := current + int64(offset)
		if equal(Digest(productID, seed, w), provided) {
			return Result{Valid: true, MatchedWindow: w, Offset: offset}, nil
		}
	}

	return Result{}, nil
}
