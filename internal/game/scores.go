package game

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Record is the best result for one level.
type Record struct {
	Best  int // highest score
	Shots int // fewest shots that reached Best
}

// Beats reports whether a finished round (score, shots) should replace r:
// a strictly higher score, or the same score with strictly fewer shots.
func (r Record) Beats(score, shots int) bool {
	if score != r.Best {
		return score > r.Best
	}
	return shots < r.Shots
}

// Records holds the best result of every level.
type Records [LevelCount]Record

// Get returns the record for level l.
func (rs Records) Get(l Level) Record {
	if !l.Valid() {
		return Record{}
	}
	return rs[l.index()]
}

// Update applies the best-score rule and reports whether the record changed.
func (rs *Records) Update(l Level, score, shots int) bool {
	if !l.Valid() || score < 0 || shots < 0 {
		return false
	}
	if !rs[l.index()].Beats(score, shots) {
		return false
	}
	rs[l.index()] = Record{Best: score, Shots: shots}
	return true
}

// ScoreStore persists Records as one "level best shots" line per level.
type ScoreStore struct {
	path   string
	logger *log.Logger
}

// NewScoreStore creates a store backed by path. A nil logger discards output.
func NewScoreStore(path string, logger *log.Logger) *ScoreStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ScoreStore{path: path, logger: logger}
}

// Path is the backing file.
func (s *ScoreStore) Path() string { return s.path }

// Load reads the stored records. A missing or unreadable file yields zero
// records; malformed lines are logged and leave that level at zero.
func (s *ScoreStore) Load() Records {
	var rs Records
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Printf("read %s: %v; using defaults", s.path, err)
		}
		return rs
	}
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		l, rec, err := parseRecordLine(line)
		if err != nil {
			s.logger.Printf("%s:%d: %v; skipped", s.path, lineNo, err)
			continue
		}
		rs[l.index()] = rec
	}
	if err := sc.Err(); err != nil {
		s.logger.Printf("scan %s: %v; using defaults", s.path, err)
		return Records{}
	}
	return rs
}

func parseRecordLine(line string) (Level, Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, Record{}, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	var nums [3]int
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return 0, Record{}, fmt.Errorf("field %d: %w", i+1, err)
		}
		nums[i] = n
	}
	l := Level(nums[0])
	if !l.Valid() {
		return 0, Record{}, fmt.Errorf("level %d out of range", nums[0])
	}
	if nums[1] < 0 || nums[2] < 0 {
		return 0, Record{}, errors.New("negative score or shots")
	}
	return l, Record{Best: nums[1], Shots: nums[2]}, nil
}

// scoreFileMode is applied to the temp file; os.CreateTemp uses 0600.
const scoreFileMode = 0o644

// Save overwrites the store with rs. The file is written next to the target
// and renamed into place so a crash never leaves a half-written store.
func (s *ScoreStore) Save(rs Records) error {
	var buf bytes.Buffer
	for _, l := range Levels() {
		r := rs[l.index()]
		fmt.Fprintf(&buf, "%d %d %d\n", int(l), r.Best, r.Shots)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save scores: %w", err)
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(scoreFileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save scores: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("save scores: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save scores: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("save scores: %w", err)
	}
	return nil
}

// FormatRecords renders a plain-text scoreboard, one level per line.
func FormatRecords(rs Records) string {
	var sb strings.Builder
	for _, l := range Levels() {
		r := rs.Get(l)
		acc := "-"
		if r.Shots > 0 {
			acc = fmt.Sprintf("%.0f%%", 100*float64(r.Best)/float64(r.Shots))
		}
		fmt.Fprintf(&sb, "Level %d  best %3d  shots %3d  accuracy %s\n", int(l), r.Best, r.Shots, acc)
	}
	return sb.String()
}
