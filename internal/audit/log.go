// Package audit appends scan summaries to a JSONL log. Records carry
// counts and fingerprint material only, never raw values or redacted
// context, so the log itself can never become a leak.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/cloakscan/cloakscan/internal/types"
)

type ScanRecord struct {
	Timestamp   time.Time      `json:"timestamp"`
	ScanID      string         `json:"scan_id"`
	Source      string         `json:"source,omitempty"`
	ContentHash string         `json:"content_hash"`
	SecretCount int            `json:"secret_count"`
	Counts      map[string]int `json:"counts,omitempty"`
	Duration    string         `json:"duration,omitempty"`
}

// NewRecord summarizes a scan over the given content.
func NewRecord(source, content string, res types.ScanResult, d time.Duration) ScanRecord {
	counts := map[string]int{}
	for _, s := range res.Secrets {
		counts[string(s.Type)]++
	}
	hash := fmt.Sprintf("%016x", xxhash.Sum64String(content))
	return ScanRecord{
		Timestamp:   time.Now().UTC(),
		ScanID:      fmt.Sprintf("scan_%s_%d", hash[:8], time.Now().UnixNano()),
		Source:      source,
		ContentHash: hash,
		SecretCount: res.SecretCount,
		Counts:      counts,
		Duration:    d.String(),
	}
}

type Log struct {
	path string
}

func New(path string) *Log { return &Log{path: path} }

// Append writes one record. Permissions stay owner-only since even counts
// can be sensitive operational metadata.
func (l *Log) Append(rec ScanRecord) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode audit record: %w", err)
	}
	if _, err := f.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

// History loads all records, newest first. Lines that fail to parse are
// skipped so one corrupt write cannot wedge the whole log.
func (l *Log) History() ([]ScanRecord, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var records []ScanRecord
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec ScanRecord
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
