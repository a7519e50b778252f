package hg

import (
	"context"
	"strconv"
	"strings"
)

// logTemplate renders one changeset per line with unit-separator delimited fields
const logTemplate = "{rev}\\x1f{node|short}\\x1f{branch}\\x1f{author|person}\\x1f{date|isodate}\\x1f{desc|firstline}\\n"

func (r *repository) Cat(ctx context.Context, path, ref string) (string, error) {
	args := []string{"cat"}
	if ref != "" {
		args = append(args, "--rev", ref)
	}
	args = append(args, path)
	return r.runner.RunRaw(ctx, args...)
}

func (r *repository) Annotate(ctx context.Context, path string) ([]string, error) {
	return r.runner.RunLines(ctx, "annotate", "--user", "--number", path)
}

func (r *repository) GetHeads(ctx context.Context) ([]LogEntry, error) {
	lines, err := r.runner.RunLines(ctx, "heads", "--template", logTemplate)
	if err != nil {
		if isBenignExit1(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	return parseLogLines(lines), nil
}

func (r *repository) GetParents(ctx context.Context, revision string) ([]LogEntry, error) {
	args := []string{"parents", "--template", logTemplate}
	if revision != "" {
		args = append(args, "--rev", revision)
	}
	lines, err := r.runner.RunLines(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLogLines(lines), nil
}

func (r *repository) GetBranches(ctx context.Context) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "branches", "--template", "{branch}\\n")
	if err != nil {
		return nil, err
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

func (r *repository) GetTags(ctx context.Context) ([]string, error) {
	lines, err := r.runner.RunLines(ctx, "tags", "--template", "{tag}\\n")
	if err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

func (r *repository) GetBookmarks(ctx context.Context) ([]Bookmark, error) {
	lines, err := r.runner.RunLines(ctx, "bookmarks", "--template", "{active}\\x1f{bookmark}\\n")
	if err != nil {
		return nil, err
	}
	bookmarks := make([]Bookmark, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, "\x1f", 2)
		if len(parts) != 2 || parts[1] == "" {
			continue
		}
		bookmarks = append(bookmarks, Bookmark{
			Name:   parts[1],
			Active: parts[0] == "True",
		})
	}
	return bookmarks, nil
}

func (r *repository) GetPaths(ctx context.Context) ([]Path, error) {
	lines, err := r.runner.RunLines(ctx, "paths")
	if err != nil {
		return nil, err
	}
	paths := make([]Path, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, " = ", 2)
		if len(parts) != 2 {
			continue
		}
		paths = append(paths, Path{
			Name: strings.TrimSpace(parts[0]),
			URL:  strings.TrimSpace(parts[1]),
		})
	}
	return paths, nil
}

func (r *repository) GetLogEntries(ctx context.Context, limit int) ([]LogEntry, error) {
	args := []string{"log", "--template", logTemplate}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}
	lines, err := r.runner.RunLines(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLogLines(lines), nil
}

// parseLogLines parses logTemplate-formatted output, skipping malformed lines
func parseLogLines(lines []string) []LogEntry {
	entries := make([]LogEntry, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, "\x1f")
		if len(parts) != 6 {
			continue
		}
		rev, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		entries = append(entries, LogEntry{
			Revision: rev,
			Node:     parts[1],
			Branch:   parts[2],
			Author:   parts[3],
			Date:     parts[4],
			Message:  parts[5],
		})
	}
	return entries
}
