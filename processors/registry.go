// Package processors maps file types to content transformers. The registry
// is an ordered list with first-match lookup: when two entries claim the
// same extension, the earlier registration shadows the later one. That
// shadowing is deliberate, load-order-dependent behavior.
package processors

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"
)

// Input carries the file data and metadata handed to a transform
type Input struct {
	Filename  string
	Mimetype  string
	Extension string
	Content   []byte
	UserID    string
	ChannelID string
	ThreadTS  string
}

// OutputFile is a file the transform wants uploaded back to the channel
type OutputFile struct {
	Content  []byte
	Filename string
	Title    string
}

// Output is what a transform wants sent back to Slack. A nil Output from
// the registry means no processor matched; an Output with neither text
// nor file is legal and results in no reply at all.
type Output struct {
	Text          string
	Blocks        []json.RawMessage
	File          *OutputFile
	ReplyInThread bool
}

// Transform converts raw file bytes plus metadata into an optional reply
type Transform func(ctx context.Context, input Input) (*Output, error)

// Entry describes one registered processor
type Entry struct {
	// Extensions this processor handles, lowercase, without the dot
	Extensions []string
	// Mimetypes this processor handles (fallback when no extension matches)
	Mimetypes []string
	// Transform is the processor function
	Transform Transform
	// Description for help text
	Description string
}

// Registry holds processors in registration order. Populated once at
// startup and treated as read-only afterwards; Register is not safe to
// call concurrently with Find or Process.
type Registry struct {
	entries []*Entry
}

// NewRegistry creates an empty processor registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a processor entry. No uniqueness check is performed:
// earlier entries shadow later ones for overlapping extensions.
func (r *Registry) Register(entry Entry) {
	r.entries = append(r.entries, &entry)
	log.Printf("🧩 Registered processor: %s (%s)", entry.Description, strings.Join(entry.Extensions, ", "))
}

// ExtractExtension derives the lowercase extension from a filename.
// A filename with no dot yields an empty extension.
func ExtractExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// Find returns the first entry claiming the file's extension, or failing
// that, the given MIME type. Returns None when nothing matches.
func (r *Registry) Find(filename, mimetype string) mo.Option[*Entry] {
	ext := ExtractExtension(filename)

	for _, entry := range r.entries {
		if ext != "" {
			for _, e := range entry.Extensions {
				if e == ext {
					return mo.Some(entry)
				}
			}
		}
		for _, m := range entry.Mimetypes {
			if m == mimetype {
				return mo.Some(entry)
			}
		}
	}

	return mo.None[*Entry]()
}

// Process resolves a processor via Find and invokes it. A nil, nil return
// means no processor matched, which is not an error. A panic inside the
// transform is recovered into an error.
func (r *Registry) Process(ctx context.Context, input Input) (output *Output, err error) {
	maybeEntry := r.Find(input.Filename, input.Mimetype)
	if !maybeEntry.IsPresent() {
		log.Printf("🧩 No processor found for: %s", input.Filename)
		return nil, nil
	}
	entry := maybeEntry.MustGet()

	log.Printf("🧩 Processing %s with: %s", input.Filename, entry.Description)

	defer func() {
		if rec := recover(); rec != nil {
			output = nil
			err = fmt.Errorf("processor panicked on %s: %v", input.Filename, rec)
		}
	}()

	return entry.Transform(ctx, input)
}

// DescribeSupported returns a human-readable listing of registered
// extensions and descriptions for help text
func (r *Registry) DescribeSupported() string {
	lines := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		lines = append(lines, fmt.Sprintf("• %s: %s", strings.Join(entry.Extensions, ", "), entry.Description))
	}
	return strings.Join(lines, "\n")
}
