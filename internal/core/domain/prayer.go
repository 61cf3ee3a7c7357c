package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

type PrayerName string

const (
	Fajr    PrayerName = "fajr"
	Dhuhr   PrayerName = "dhuhr"
	Asr     PrayerName = "asr"
	Maghrib PrayerName = "maghrib"
	Isha    PrayerName = "isha"
)

// PrayerNames lists the daily prayers in chronological order.
var PrayerNames = []PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// ParsePrayerName accepts any casing or Unicode-compatible spelling
// ("Fajr", " DHUHR ") and returns the lowercase storage form.
func ParsePrayerName(s string) (PrayerName, error) {
	name := PrayerName(strings.ToLower(strings.TrimSpace(norm.NFKC.String(s))))
	if !name.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPrayer, s)
	}
	return name, nil
}

func (p PrayerName) Valid() bool {
	switch p {
	case Fajr, Dhuhr, Asr, Maghrib, Isha:
		return true
	}
	return false
}

// DisplayName is the capitalized form used in reports.
func (p PrayerName) DisplayName() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

type PrayerStatus struct {
	Performed bool `json:"performed"`
	WithJamat bool `json:"withJamat"`
}

// PrayerStatusPatch carries only the fields a partial edit should touch.
type PrayerStatusPatch struct {
	Performed *bool `json:"performed,omitempty"`
	WithJamat *bool `json:"withJamat,omitempty"`
}

func (p PrayerStatusPatch) Empty() bool {
	return p.Performed == nil && p.WithJamat == nil
}

func (s PrayerStatus) Apply(p PrayerStatusPatch) PrayerStatus {
	if p.Performed != nil {
		s.Performed = *p.Performed
	}
	if p.WithJamat != nil {
		s.WithJamat = *p.WithJamat
	}
	return s
}

type DayRecord map[PrayerName]PrayerStatus

// DefaultDayRecord returns a new record with every prayer unperformed.
// Each call allocates a fresh map so callers never share state across days.
func DefaultDayRecord() DayRecord {
	record := make(DayRecord, len(PrayerNames))
	for _, name := range PrayerNames {
		record[name] = PrayerStatus{}
	}
	return record
}

// MergeDayRecord overlays the persisted entries onto the default record.
func MergeDayRecord(raw DayRecord) DayRecord {
	merged := DefaultDayRecord()
	for name, status := range raw {
		if name.Valid() {
			merged[name] = status
		}
	}
	return merged
}

func (d DayRecord) PerformedCount() int {
	count := 0
	for _, name := range PrayerNames {
		if d[name].Performed {
			count++
		}
	}
	return count
}

func (d DayRecord) JamatCount() int {
	count := 0
	for _, name := range PrayerNames {
		if s := d[name]; s.Performed && s.WithJamat {
			count++
		}
	}
	return count
}

// Progress is the share of the five daily prayers performed, 0-100.
func (d DayRecord) Progress() float64 {
	return float64(d.PerformedCount()) / float64(len(PrayerNames)) * 100
}

// Complete reports whether all five prayers were performed.
func (d DayRecord) Complete() bool {
	return d.PerformedCount() == len(PrayerNames)
}

// DecodeDayRecord parses a persisted JSON value. Keys are normalized to the
// lowercase storage form; unknown keys are dropped. When several keys name the
// same prayer the exact lowercase key wins, otherwise the last in sorted order.
// An empty value decodes to an empty record.
func DecodeDayRecord(value string) (DayRecord, error) {
	record := DayRecord{}
	if strings.TrimSpace(value) == "" {
		return record, nil
	}

	var raw map[string]PrayerStatus
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("decode day record: %w", err)
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	exact := make(map[PrayerName]bool, len(PrayerNames))
	for _, key := range keys {
		name, err := ParsePrayerName(key)
		if err != nil || exact[name] {
			continue
		}
		record[name] = raw[key]
		exact[name] = key == string(name)
	}
	return record, nil
}

func EncodeDayRecord(record DayRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode day record: %w", err)
	}
	return string(data), nil
}
