// Package guards decides whether a file-shared event should be skipped
// before any expensive work begins. Recursion from the bot's own uploads,
// already-processed output files and oversized files are all cut off here.
package guards

import "strings"

// DefaultMaxFileSize is the size guard's limit when none is configured (50 MiB)
const DefaultMaxFileSize int64 = 52428800

// defaultSkipPatterns mark filenames that are themselves processing output
var defaultSkipPatterns = []string{"-resized", "-processed", "-thumbnail", "-converted"}

// Context carries the fields guards inspect for one candidate file
type Context struct {
	FileUserID string
	BotUserID  string
	Filename   string
	Mimetype   string
	FileSize   int64
}

// Result reports whether processing should be skipped and why
type Result struct {
	Skip   bool
	Reason string
}

// Guard is a pure predicate over a guard context
type Guard func(ctx Context) Result

// Config tunes the built-in guards
type Config struct {
	// MaxFileSize in bytes; zero selects DefaultMaxFileSize
	MaxFileSize int64
	// SkipPatterns replaces the default output-filename markers when non-nil
	SkipPatterns []string
}

// Chain evaluates guards in registration order, stopping at the first skip.
// Built at startup and treated as read-only afterwards; AddGuard is not
// safe to call concurrently with ShouldSkip.
type Chain struct {
	guards []Guard
}

// NewChain creates a guard chain with the built-in guards installed
func NewChain(cfg Config) *Chain {
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	patterns := cfg.SkipPatterns
	if patterns == nil {
		patterns = defaultSkipPatterns
	}

	return &Chain{
		guards: []Guard{
			selfUploadGuard,
			outputPatternGuard(patterns),
			sizeGuard(maxSize),
		},
	}
}

// AddGuard appends a custom guard after the built-ins
func (c *Chain) AddGuard(guard Guard) {
	c.guards = append(c.guards, guard)
}

// ShouldSkip returns the first triggering guard's result, or a definitive
// "proceed" when no guard triggers
func (c *Chain) ShouldSkip(ctx Context) Result {
	for _, guard := range c.guards {
		if result := guard(ctx); result.Skip {
			return result
		}
	}
	return Result{Skip: false}
}

// selfUploadGuard skips files the bot uploaded itself (prevents infinite loops)
func selfUploadGuard(ctx Context) Result {
	if ctx.FileUserID != "" && ctx.BotUserID != "" && ctx.FileUserID == ctx.BotUserID {
		return Result{Skip: true, Reason: "file uploaded by bot itself"}
	}
	return Result{Skip: false}
}

// outputPatternGuard skips filenames that look like prior processing output
func outputPatternGuard(patterns []string) Guard {
	return func(ctx Context) Result {
		if ctx.Filename == "" {
			return Result{Skip: false}
		}
		for _, pattern := range patterns {
			if strings.Contains(ctx.Filename, pattern) {
				return Result{Skip: true, Reason: "filename contains skip pattern: " + ctx.Filename}
			}
		}
		return Result{Skip: false}
	}
}

// sizeGuard skips files strictly larger than the configured maximum
func sizeGuard(maxSize int64) Guard {
	return func(ctx Context) Result {
		if ctx.FileSize > maxSize {
			return Result{Skip: true, Reason: "file too large"}
		}
		return Result{Skip: false}
	}
}
