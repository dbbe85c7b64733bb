package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fluux-io/fluux-agent/jid"
)

// Workspace roots the persisted state tree: one subdirectory per bare JID
// under peers/, plus a global/ directory holding the operator-configured
// defaults for identity.md, personality.md, and instructions.md.
type Workspace struct {
	root  string
	locks stripedLocks
}

// New creates a Workspace rooted at dir. The directory is not created here;
// call Init to lay out the fixed top-level structure.
func New(dir string) *Workspace {
	return &Workspace{root: dir}
}

// Init creates the workspace root and its global/ and peers/ subdirectories.
func (w *Workspace) Init() error {
	for _, d := range []string{w.globalDir(), w.peersDir()} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("workspace: create dir %s: %w", d, err)
		}
	}
	return nil
}

func (w *Workspace) globalDir() string { return filepath.Join(w.root, "global") }
func (w *Workspace) peersDir() string  { return filepath.Join(w.root, "peers") }

// globalPath returns the path to a global override file (identity.md,
// personality.md, instructions.md).
func (w *Workspace) globalPath(name string) string {
	return filepath.Join(w.globalDir(), name)
}

// safePeerDirName maps a bare JID to a filesystem-safe directory name,
// since '@' and other JID characters are not guaranteed safe on every
// platform the bridge might run on.
func safePeerDirName(bare jid.JID) string {
	s := bare.String()
	result := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			result[i] = '_'
		default:
			result[i] = c
		}
	}
	return string(result)
}

// Peer returns a handle bound to the given bare JID's directory, creating
// it (and its files/ and sessions/ subdirectories) if it does not exist.
// A full JID is reduced to its bare form first. Workspace directories for
// distinct bare JIDs never share or cross-reference each other's files.
func (w *Workspace) Peer(bare jid.JID) (*Peer, error) {
	bare = bare.Bare()
	dir := filepath.Join(w.peersDir(), safePeerDirName(bare))
	for _, d := range []string{dir, filepath.Join(dir, "files"), filepath.Join(dir, "sessions")} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("workspace: create peer dir %s: %w", d, err)
		}
	}
	return &Peer{
		ws:   w,
		bare: bare,
		dir:  dir,
		lock: w.locks.get(bare.String()),
	}, nil
}

// Peer is a handle onto one bare JID's workspace directory. All Peer
// handles for the same bare JID share one mutex from a striped lock map.
// Peer's file methods do not take it themselves; callers serialize access
// with Lock and Unlock.
type Peer struct {
	ws   *Workspace
	bare jid.JID
	dir  string
	lock *sync.Mutex
}

func (p *Peer) path(name string) string { return filepath.Join(p.dir, name) }
func (p *Peer) FilesDir() string        { return filepath.Join(p.dir, "files") }
func (p *Peer) SessionsDir() string     { return filepath.Join(p.dir, "sessions") }
func (p *Peer) HistoryPath() string     { return p.path("history.jsonl") }
func (p *Peer) MemoryPath() string      { return p.path("memory.md") }
func (p *Peer) UserPath() string        { return p.path("user.md") }
func (p *Peer) BareJID() jid.JID        { return p.bare }

// stripedLocks hands out a *sync.Mutex per key, creating it on first use.
// Grounded in the teacher's per-entity sync.RWMutex pattern (storage/file),
// generalized into a map since the number of distinct peers is unbounded.
type stripedLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (s *stripedLocks) get(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m == nil {
		s.m = make(map[string]*sync.Mutex)
	}
	if l, ok := s.m[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.m[key] = l
	return l
}

// Lock serializes access to this peer's workspace files.
func (p *Peer) Lock() { p.lock.Lock() }

// Unlock releases the peer's workspace lock.
func (p *Peer) Unlock() { p.lock.Unlock() }
