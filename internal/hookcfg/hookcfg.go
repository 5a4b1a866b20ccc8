// Package hookcfg installs and removes this tool's entry in Cursor's
// hooks.json. The merge is idempotent and surgical: entries belonging
// to other tools or other projects are preserved byte-for-byte in
// their original order.
package hookcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HookEventName is the single hook this tool registers for
const HookEventName = "beforeSubmitPrompt"

// Document models the hooks.json file
type Document struct {
	Version int                `json:"version"`
	Hooks   map[string][]Entry `json:"hooks"`
}

// Entry is one registered hook command
type Entry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	CWD     string            `json:"cwd"`
	Env     map[string]string `json:"env,omitempty"`
}

// Install statuses
const (
	StatusInstalled        = "installed"
	StatusUpdated          = "updated"
	StatusAlreadyInstalled = "already-installed"
	StatusUninstalled      = "uninstalled"
	StatusNotInstalled     = "not-installed"
)

// InstallOptions configures an install operation
type InstallOptions struct {
	HooksPath  string // path to hooks.json; empty uses the default
	ProjectDir string // project the hook is scoped to
	Command    string
	Args       []string
	Env        map[string]string
	DryRun     bool // perform everything except the write
	Force      bool // rewrite the entry even when identical
}

// InstallResult reports what an install did
type InstallResult struct {
	Status     string
	HooksPath  string
	BackupPath string // empty when no write happened
	Entry      Entry
}

// UninstallOptions configures an uninstall operation
type UninstallOptions struct {
	HooksPath  string
	ProjectDir string
	DryRun     bool
	KeepEmpty  bool // keep empty hook lists instead of pruning them
}

// UninstallResult reports what an uninstall did
type UninstallResult struct {
	Status     string
	HooksPath  string
	BackupPath string
}

// DefaultHooksPath returns Cursor's user-level hooks.json location
func DefaultHooksPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory; %w", err)
	}
	return filepath.Join(home, ".cursor", "hooks.json"), nil
}

// Install merges this tool's entry into hooks.json. A second install for
// the same project is a no-op; a changed command or argument list updates
// the existing entry in place, preserving its position.
func Install(opts InstallOptions) (InstallResult, error) {
	hooksPath, err := resolveHooksPath(opts.HooksPath)
	if err != nil {
		return InstallResult{}, err
	}

	projectDir, err := normalizePath(opts.ProjectDir)
	if err != nil {
		return InstallResult{}, fmt.Errorf("failed to normalize project path; %w", err)
	}

	if opts.Command == "" {
		return InstallResult{}, fmt.Errorf("command cannot be empty")
	}

	doc, err := load(hooksPath)
	if err != nil {
		return InstallResult{}, err
	}

	entry := Entry{
		Command: opts.Command,
		Args:    opts.Args,
		CWD:     projectDir,
		Env:     opts.Env,
	}

	result := InstallResult{
		HooksPath: hooksPath,
		Entry:     entry,
	}

	entries := doc.Hooks[HookEventName]
	idx := findEntry(entries, projectDir)

	switch {
	case idx >= 0 && entriesEqual(entries[idx], entry) && !opts.Force && countEntries(entries, projectDir) == 1:
		result.Status = StatusAlreadyInstalled
		return result, nil
	case idx >= 0:
		// replace in place, then drop any further entries for the same
		// project so at most one remains
		entries[idx] = entry
		entries = dropEntriesAfter(entries, projectDir, idx)
		result.Status = StatusUpdated
	default:
		entries = append(entries, entry)
		result.Status = StatusInstalled
	}

	doc.Hooks[HookEventName] = entries

	if opts.DryRun {
		return result, nil
	}

	backupPath, err := writeDocument(hooksPath, doc)
	if err != nil {
		return InstallResult{}, err
	}
	result.BackupPath = backupPath

	return result, nil
}

// Uninstall removes this tool's entry for a project from hooks.json.
// The hook list is pruned when it empties, and the file itself is
// removed when nothing remains, unless KeepEmpty is set.
func Uninstall(opts UninstallOptions) (UninstallResult, error) {
	hooksPath, err := resolveHooksPath(opts.HooksPath)
	if err != nil {
		return UninstallResult{}, err
	}

	projectDir, err := normalizePath(opts.ProjectDir)
	if err != nil {
		return UninstallResult{}, fmt.Errorf("failed to normalize project path; %w", err)
	}

	result := UninstallResult{
		HooksPath: hooksPath,
	}

	if _, err := os.Stat(hooksPath); os.IsNotExist(err) {
		result.Status = StatusNotInstalled
		return result, nil
	}

	doc, err := load(hooksPath)
	if err != nil {
		return UninstallResult{}, err
	}

	entries := doc.Hooks[HookEventName]
	remaining := removeEntries(entries, projectDir)
	if len(remaining) == len(entries) {
		result.Status = StatusNotInstalled
		return result, nil
	}

	entries = remaining
	result.Status = StatusUninstalled

	if len(entries) == 0 && !opts.KeepEmpty {
		delete(doc.Hooks, HookEventName)
	} else {
		doc.Hooks[HookEventName] = entries
	}

	if opts.DryRun {
		return result, nil
	}

	if documentEmpty(doc) && !opts.KeepEmpty {
		backupPath, err := backupFile(hooksPath)
		if err != nil {
			return UninstallResult{}, err
		}
		if err := os.Remove(hooksPath); err != nil {
			return UninstallResult{}, fmt.Errorf("failed to remove hooks file; %w", err)
		}
		result.BackupPath = backupPath
		return result, nil
	}

	backupPath, err := writeDocument(hooksPath, doc)
	if err != nil {
		return UninstallResult{}, err
	}
	result.BackupPath = backupPath

	return result, nil
}

// Installed reports whether an entry for the project exists
func Installed(hooksPath, projectDir string) (bool, error) {
	hooksPath, err := resolveHooksPath(hooksPath)
	if err != nil {
		return false, err
	}

	projectDir, err = normalizePath(projectDir)
	if err != nil {
		return false, fmt.Errorf("failed to normalize project path; %w", err)
	}

	if _, err := os.Stat(hooksPath); os.IsNotExist(err) {
		return false, nil
	}

	doc, err := load(hooksPath)
	if err != nil {
		return false, err
	}

	return findEntry(doc.Hooks[HookEventName], projectDir) >= 0, nil
}

func resolveHooksPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultHooksPath()
}

// load parses hooks.json; a missing file yields an empty version 1
// document. Malformed JSON is an error the operator must resolve by
// hand, never silently overwritten.
func load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Document{Version: 1, Hooks: make(map[string][]Entry)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks file; %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("hooks file %s is not valid JSON; %w", path, err)
	}

	if doc.Version == 0 {
		doc.Version = 1
	}
	if doc.Hooks == nil {
		doc.Hooks = make(map[string][]Entry)
	}

	return &doc, nil
}

// normalizePath resolves a path to its absolute, symlink-free form.
// Symlink resolution is best-effort; a path that does not exist yet
// keeps its absolute form.
func normalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}

	return resolved, nil
}

// findEntry locates the first entry for a normalized project path
func findEntry(entries []Entry, projectDir string) int {
	for i, entry := range entries {
		if entryMatches(entry, projectDir) {
			return i
		}
	}
	return -1
}

// countEntries counts the entries for a normalized project path
func countEntries(entries []Entry, projectDir string) int {
	n := 0
	for _, entry := range entries {
		if entryMatches(entry, projectDir) {
			n++
		}
	}
	return n
}

// removeEntries returns entries with every match for the project path
// removed, preserving the order of the rest
func removeEntries(entries []Entry, projectDir string) []Entry {
	var kept []Entry
	for _, entry := range entries {
		if !entryMatches(entry, projectDir) {
			kept = append(kept, entry)
		}
	}
	return kept
}

// dropEntriesAfter removes matches for the project path at positions
// beyond keep, collapsing duplicates down to the one kept entry
func dropEntriesAfter(entries []Entry, projectDir string, keep int) []Entry {
	var kept []Entry
	for i, entry := range entries {
		if i > keep && entryMatches(entry, projectDir) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}

func entryMatches(entry Entry, projectDir string) bool {
	cwd, err := normalizePath(entry.CWD)
	if err != nil {
		return false
	}
	return cwd == projectDir
}

func entriesEqual(a, b Entry) bool {
	if a.Command != b.Command || a.CWD != b.CWD {
		return false
	}
	if len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	if len(a.Env) != len(b.Env) {
		return false
	}
	for k, v := range a.Env {
		if b.Env[k] != v {
			return false
		}
	}
	return true
}

func documentEmpty(doc *Document) bool {
	for _, entries := range doc.Hooks {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

// writeDocument backs up the existing file, then writes the new content
// atomically via a temp file and rename
func writeDocument(path string, doc *Document) (string, error) {
	backupPath, err := backupFile(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create hooks directory; %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal hooks file; %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".hooks-*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file; %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write temp file; %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file; %w", err)
	}

	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set permissions; %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to replace hooks file; %w", err)
	}

	return backupPath, nil
}

// backupFile copies the current file to a timestamped sibling before a
// write. No file means no backup.
func backupFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read hooks file for backup; %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102_150405"))
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup; %w", err)
	}

	return backupPath, nil
}
