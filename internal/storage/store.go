package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/skyline/internal/config"
	"github.com/san-kum/skyline/internal/skyline"
)

var ErrNoRender = errors.New("storage: render not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RenderRecord describes one exported scene.
type RenderRecord struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	Seed         int64         `json:"seed"`
	Config       config.Config `json:"config"`
	Distribution []int         `json:"distribution"`
	Towers       int           `json:"towers"`
	LitWindows   int           `json:"lit_windows"`
	Files        []string      `json:"files"`
}

// TowerRow is one line of a render's towers.csv.
type TowerRow struct {
	Layer      int
	X, Y, W, H float64
	Hue        float64
	WindowsX   int
	WindowsY   int
	Lit        int
}

var towerHeader = []string{"layer", "x", "y", "width", "height", "hue", "windows_x", "windows_y", "lit"}

func RowsFromTowers(towers []*skyline.Tower) []TowerRow {
	rows := make([]TowerRow, len(towers))
	for i, t := range towers {
		rows[i] = TowerRow{
			Layer:    t.Layer().ID() / 2,
			X:        t.X,
			Y:        t.Y,
			W:        t.Width,
			H:        t.Height,
			Hue:      t.Hue,
			WindowsX: t.NbWindowsX(),
			WindowsY: t.NbWindowsY(),
			Lit:      t.LitCount(),
		}
	}
	return rows
}

// Save writes record.json and towers.csv under a fresh render directory
// and returns the render ID.
func (s *Store) Save(rec RenderRecord, rows []TowerRow) (string, error) {
	now := time.Now()
	rec.ID = fmt.Sprintf("render_%d", now.UnixNano())
	rec.Timestamp = now
	runDir := filepath.Join(s.baseDir, rec.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "record.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "towers.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(towerHeader); err != nil {
		return "", err
	}
	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Layer),
			ftoa(r.X), ftoa(r.Y), ftoa(r.W), ftoa(r.H), ftoa(r.Hue),
			strconv.Itoa(r.WindowsX),
			strconv.Itoa(r.WindowsY),
			strconv.Itoa(r.Lit),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return rec.ID, nil
}

// List returns every readable record, newest first.
func (s *Store) List() ([]RenderRecord, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RenderRecord{}, nil
		}
		return nil, err
	}

	recs := make([]RenderRecord, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rec, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		recs = append(recs, *rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Timestamp.After(recs[j].Timestamp)
	})
	return recs, nil
}

func (s *Store) Load(id string) (*RenderRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "record.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNoRender)
		}
		return nil, err
	}

	var rec RenderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) LoadTowers(id string) ([]TowerRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "towers.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", id, ErrNoRender)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([]TowerRow, 0, max(0, len(records)-1))
	for i := 1; i < len(records); i++ {
		rec := records[i]
		if len(rec) != len(towerHeader) {
			continue
		}
		var r TowerRow
		r.Layer, _ = strconv.Atoi(rec[0])
		r.X, _ = strconv.ParseFloat(rec[1], 64)
		r.Y, _ = strconv.ParseFloat(rec[2], 64)
		r.W, _ = strconv.ParseFloat(rec[3], 64)
		r.H, _ = strconv.ParseFloat(rec[4], 64)
		r.Hue, _ = strconv.ParseFloat(rec[5], 64)
		r.WindowsX, _ = strconv.Atoi(rec[6])
		r.WindowsY, _ = strconv.Atoi(rec[7])
		r.Lit, _ = strconv.Atoi(rec[8])
		rows = append(rows, r)
	}
	return rows, nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
