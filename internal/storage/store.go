package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/basinsim/internal/basin"
	"github.com/san-kum/basinsim/internal/dynamo"
	"github.com/san-kum/basinsim/internal/physics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID               string         `json:"id"`
	Timestamp        time.Time      `json:"timestamp"`
	Size             int            `json:"size"`
	RequestedSamples int            `json:"requested_samples"`
	Samples          int            `json:"samples"`
	Workers          int            `json:"workers"`
	Seed             uint64         `json:"seed"`
	Params           physics.Params `json:"params"`
	Elapsed          time.Duration  `json:"elapsed_ns"`
	Output           string         `json:"output,omitempty"`
	Summary          basin.Summary  `json:"summary"`
}

// Save writes meta and the full canvas under a new run directory and
// returns the run id. ID and Timestamp are filled in here. On failure the
// run directory is removed.
func (s *Store) Save(meta RunMetadata, canvas *basin.Grid) (id string, err error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("basin%d_%d", meta.Size, meta.Timestamp.UnixNano())

	runDir := s.RunDir(meta.ID)
	if err = os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	if err = writeMetadata(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err = writeCanvas(filepath.Join(runDir, "canvas.csv"), canvas); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// RunDir is the directory holding a run's files.
func (s *Store) RunDir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeCanvas(path string, canvas *basin.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "y", "pole1", "pole2"}); err != nil {
		f.Close()
		return err
	}
	for y := 0; y < canvas.Size; y++ {
		for x := 0; x < canvas.Size; x++ {
			v := canvas.At(x, y)
			row := []string{
				strconv.Itoa(x),
				strconv.Itoa(y),
				strconv.FormatFloat(v.X, 'g', -1, 64),
				strconv.FormatFloat(v.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				f.Close()
				return err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns the metadata of all runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.RunDir(runID), "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadCanvas reads a run's canvas back. Rows outside the recorded size are
// rejected.
func (s *Store) LoadCanvas(runID string) (*basin.Grid, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.RunDir(runID), "canvas.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	canvas, err := basin.NewGrid(2 * meta.Size)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(records); i++ {
		rec := records[i]
		x, errX := strconv.Atoi(rec[0])
		y, errY := strconv.Atoi(rec[1])
		p1, errP1 := strconv.ParseFloat(rec[2], 64)
		p2, errP2 := strconv.ParseFloat(rec[3], 64)
		if errX != nil || errY != nil || errP1 != nil || errP2 != nil {
			return nil, fmt.Errorf("canvas.csv line %d: malformed record", i+1)
		}
		if x < 0 || y < 0 || x >= canvas.Size || y >= canvas.Size {
			return nil, fmt.Errorf("canvas.csv line %d: cell (%d,%d): %w", i+1, x, y, dynamo.ErrShapeMismatch)
		}
		canvas.Set(x, y, dynamo.Vec2{X: p1, Y: p2})
	}

	return canvas, nil
}
