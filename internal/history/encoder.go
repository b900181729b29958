package history

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lox/basicstrategy/internal/fileutil"
)

// Encode writes the history to w as TOML.
func Encode(w io.Writer, f *File) error {
	if f == nil {
		return fmt.Errorf("history: file is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(f)
}

// Decode reads a history from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return &f, nil
}

// Load reads a history file. A missing file is an empty history.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Save writes the history file atomically.
func Save(path string, f *File) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, f)
	})
}
