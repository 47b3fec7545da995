package dataset

import (
	"context"
	"fmt"
	"os"
)

// SourceType identifies where the two documents come from.
type SourceType string

const (
	SourceFile   SourceType = "file"
	SourceHTTP   SourceType = "http"
	SourceSQLite SourceType = "db"
)

// Source is the interface every dataset provider must implement.
type Source interface {
	Name() SourceType
	Fetch(ctx context.Context) (*Documents, error)
}

// AllSourceTypes returns all known source types.
func AllSourceTypes() []SourceType {
	return []SourceType{SourceFile, SourceHTTP, SourceSQLite}
}

// FileSource reads both documents from the local filesystem.
type FileSource struct {
	ProfilesPath     string
	ClosingRanksPath string
}

// NewFileSource creates a new file-backed source.
func NewFileSource(profilesPath, closingRanksPath string) *FileSource {
	return &FileSource{ProfilesPath: profilesPath, ClosingRanksPath: closingRanksPath}
}

func (f *FileSource) Name() SourceType { return SourceFile }

func (f *FileSource) Fetch(ctx context.Context) (*Documents, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	profiles, err := os.ReadFile(f.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("read college profiles: %w", err)
	}
	closing, err := os.ReadFile(f.ClosingRanksPath)
	if err != nil {
		return nil, fmt.Errorf("read closing ranks: %w", err)
	}
	return Decode(profiles, closing)
}
