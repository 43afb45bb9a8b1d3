package calendar

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Entry is a placement within a day cell, flagged when its time range overlaps
// the entry scheduled immediately before it.
type Entry struct {
	Placement
	Conflict bool
}

// Minutes converts "HH:MM" (or "HH:MM:SS") into minutes since midnight.
// It reports false for empty or malformed input.
func Minutes(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	h, ok := clockField(parts[0], 23)
	if !ok || len(parts[0]) > 2 {
		return 0, false
	}
	m, ok := clockField(parts[1], 59)
	if !ok || len(parts[1]) != 2 {
		return 0, false
	}
	if len(parts) == 3 {
		if _, ok := clockField(parts[2], 59); !ok {
			return 0, false
		}
	}
	return h*60 + m, true
}

func clockField(s string, hi int) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > hi {
		return 0, false
	}
	return n, true
}

// DetectConflicts orders one day's placements by start time and flags each
// entry whose start falls before its predecessor's end.
//
// Entries without a usable start time sort first, keep their input order, and
// never take part in a conflict. The check is advisory and never fails.
func DetectConflicts(ps []Placement) []Entry {
	if len(ps) == 0 {
		return nil
	}
	entries := make([]Entry, len(ps))
	for i, p := range ps {
		entries[i] = Entry{Placement: p}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return cmp.Compare(startKey(a), startKey(b))
	})

	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1].Activity, entries[i].Activity
		_, prevStartOK := Minutes(prev.StartTime)
		prevEnd, prevEndOK := Minutes(prev.EndTime)
		curStart, curStartOK := Minutes(cur.StartTime)
		if prevStartOK && prevEndOK && curStartOK && prevEnd > curStart {
			entries[i].Conflict = true
		}
	}
	return entries
}

func startKey(e Entry) int {
	m, ok := Minutes(e.Activity.StartTime)
	if !ok {
		return -1
	}
	return m
}
