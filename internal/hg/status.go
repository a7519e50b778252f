package hg

import (
	"strings"
)

// StatusRecord is one raw per-file record from `hg status` or `hg resolve --list`.
// Code is the single-character status code as reported by hg. Rename carries the
// copy/rename source path when hg reports one.
type StatusRecord struct {
	Path   string
	Code   byte
	Rename string
}

// ParseStatusLines parses `hg status -C` output into records.
// A line starting with two spaces is the copy source for the preceding record.
func ParseStatusLines(lines []string) []StatusRecord {
	records := make([]StatusRecord, 0, len(lines))
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		if strings.HasPrefix(line, "  ") {
			// Copy source continuation for the previous record
			if len(records) > 0 {
				records[len(records)-1].Rename = strings.TrimSpace(line)
			}
			continue
		}
		records = append(records, StatusRecord{
			Path: line[2:],
			Code: line[0],
		})
	}
	return records
}

// ParseResolveLines parses `hg resolve --list` output into records.
// Codes are U (unresolved) and R (resolved); note R means "resolved" here,
// unlike the "removed" meaning the same letter has in status output.
func ParseResolveLines(lines []string) []StatusRecord {
	records := make([]StatusRecord, 0, len(lines))
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		records = append(records, StatusRecord{
			Path: line[2:],
			Code: line[0],
		})
	}
	return records
}
