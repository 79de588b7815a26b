package portfolio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idiazm/optrack/src/eventmodels"
)

// SnapshotStore persists the whole position map as one JSON document. Every
// save rewrites the file; there is no incremental append, so the snapshot on
// disk is always the latest complete state.
type SnapshotStore struct {
	filename string
}

func NewSnapshotStore(dataDir string, filename string) *SnapshotStore {
	return &SnapshotStore{
		filename: filepath.Join(dataDir, filename),
	}
}

func (s *SnapshotStore) Filename() string {
	return s.filename
}

func (s *SnapshotStore) Save(positions map[eventmodels.PositionKey]*eventmodels.Position) error {
	dtos := make(map[eventmodels.PositionKey]*eventmodels.PositionDTO, len(positions))
	for key, position := range positions {
		dtos[key] = position.ToDTO()
	}

	data, err := json.MarshalIndent(dtos, "", "  ")
	if err != nil {
		return fmt.Errorf("SnapshotStore.Save: failed to marshal positions: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filename), 0755); err != nil {
		return fmt.Errorf("SnapshotStore.Save: failed to create data dir: %w", err)
	}

	if err := os.WriteFile(s.filename, data, 0644); err != nil {
		return fmt.Errorf("SnapshotStore.Save: failed to write %s: %w", s.filename, err)
	}

	return nil
}

func (s *SnapshotStore) Load() (map[eventmodels.PositionKey]*eventmodels.Position, error) {
	data, err := os.ReadFile(s.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("SnapshotStore.Load: %s: %w", s.filename, eventmodels.SnapshotUnavailableErr)
		}

		return nil, fmt.Errorf("SnapshotStore.Load: failed to read %s: %w", s.filename, err)
	}

	var dtos map[eventmodels.PositionKey]*eventmodels.PositionDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("SnapshotStore.Load: failed to unmarshal %s: %w", s.filename, err)
	}

	positions := make(map[eventmodels.PositionKey]*eventmodels.Position, len(dtos))
	for key, dto := range dtos {
		position, err := dto.ToModel()
		if err != nil {
			return nil, fmt.Errorf("SnapshotStore.Load: %s: %w", key, err)
		}

		positions[key] = position
	}

	return positions, nil
}
