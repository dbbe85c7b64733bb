package workspace

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultHistoryBudget is the default number of transcript entries
// ReadTail returns when the caller does not override it.
const DefaultHistoryBudget = 20

// EnsureFresh implements the idle-session rule (spec §4.4): before
// appending to history, check history.jsonl's mtime. If it is older than
// idleTimeout (and idleTimeout > 0), archive it atomically and the next
// AppendMessage call starts a fresh file with a new header. The check is
// lazy -- it only runs when this is called, never on a background timer.
func (p *Peer) EnsureFresh(idleTimeout time.Duration, now time.Time) error {
	if idleTimeout <= 0 {
		return nil
	}
	info, err := os.Stat(p.HistoryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if now.Sub(info.ModTime()) < idleTimeout {
		return nil
	}
	return p.Archive(now)
}

// Archive atomically renames the active history.jsonl into sessions/ under
// a YYYYMMDD-HHMMSS name, so the next append starts a fresh session. It is
// a no-op if no history file exists yet.
func (p *Peer) Archive(now time.Time) error {
	if _, err := os.Stat(p.HistoryPath()); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	dest := filepath.Join(p.SessionsDir(), now.UTC().Format("20060102-150405")+".jsonl")
	if err := os.Rename(p.HistoryPath(), dest); err != nil {
		return fmt.Errorf("workspace: archive history: %w", err)
	}
	return nil
}

// AppendMessage appends a Message entry to history.jsonl, writing the
// session Header first if the file does not yet exist. Callers must hold
// the Peer's lock.
func (p *Peer) AppendMessage(msg Message) error {
	_, err := os.Stat(p.HistoryPath())
	needsHeader := errors.Is(err, os.ErrNotExist)
	if err != nil && !needsHeader {
		return err
	}

	f, err := os.OpenFile(p.HistoryPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("workspace: open history: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if err := writeJSONLine(f, NewHeader(p.bare.String(), time.Now())); err != nil {
			return err
		}
	}
	return writeJSONLine(f, msg)
}

func writeJSONLine(f *os.File, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.Write(data)
	return err
}

// ReadTail reads the Message entries in history.jsonl, skipping the
// header, and returns at most budget of the most recent ones. budget <= 0
// uses DefaultHistoryBudget.
func (p *Peer) ReadTail(budget int) ([]Message, error) {
	if budget <= 0 {
		budget = DefaultHistoryBudget
	}

	f, err := os.Open(p.HistoryPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Message
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		line := scanner.Bytes()
		if first {
			first = false
			continue // skip header
		}
		if len(line) == 0 {
			continue
		}
		var msg Message
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("workspace: decode history entry: %w", err)
		}
		all = append(all, msg)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(all) <= budget {
		return all, nil
	}
	return all[len(all)-budget:], nil
}

// ArchivedSessionCount counts the archived session files under sessions/.
func (p *Peer) ArchivedSessionCount() (int, error) {
	entries, err := os.ReadDir(p.SessionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n, nil
}

// Forget deletes history.jsonl, user.md, and memory.md, preserving
// archived sessions (spec §6 /forget).
func (p *Peer) Forget() error {
	for _, name := range []string{"history.jsonl", "user.md", "memory.md"} {
		if err := os.Remove(p.path(name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("workspace: forget %s: %w", name, err)
		}
	}
	return nil
}
