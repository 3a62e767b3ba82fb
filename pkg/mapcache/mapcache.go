// Package mapcache implements the two-level (RAM, disk) LRU cache that
// sits in front of a BlobStore: recently used documents stay in memory,
// less recent ones write through to disk, and the disk level persists a
// manifest of its remaining contents when the cache shuts down.
package mapcache

import (
	"bufio"
	"container/list"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-roadmap/roadmap-core/pkg/blobstore"
	"github.com/go-roadmap/roadmap-core/pkg/maperr"
)

const manifestName = "cached.map"

type ramEntry struct {
	key   string
	value []byte
}

type diskEntry struct {
	key         string
	entryNumber int
}

// MapCache is a two-level LRU: a RAM level holding the value bytes,
// and a disk level holding entry numbers that index blobs in a
// BlobStore. All operations serialize under one mutex.
type MapCache struct {
	mu sync.Mutex

	path  string
	store blobstore.BlobStore

	ramCap  int
	diskCap int

	active       bool
	debug        bool
	onFinalClear bool
	entryCount   int

	ramList  *list.List
	ramIndex map[string]*list.Element

	diskList  *list.List
	diskIndex map[string]*list.Element
}

// New builds a MapCache rooted at path, backed by store for disk blobs.
// path defaults to "cache/" when empty and is created if missing. If a
// cached.map manifest is present from a prior shutdown, it is replayed
// into the disk level (up to diskCap entries) and then removed.
func New(path string, store blobstore.BlobStore, ramCap, diskCap int, active bool) (*MapCache, error) {
	if path == "" {
		path = "cache/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, maperr.Wrap(maperr.CacheIOError, "create cache directory", err)
	}

	c := &MapCache{
		path:      path,
		store:     store,
		ramCap:    ramCap,
		diskCap:   diskCap,
		active:    active,
		ramList:   list.New(),
		ramIndex:  make(map[string]*list.Element),
		diskList:  list.New(),
		diskIndex: make(map[string]*list.Element),
	}

	c.replayManifest()
	return c, nil
}

// replayManifest loads a prior cached.map into the disk level, up to
// diskCap entries, then deletes the manifest file. Absence of the file
// means a fresh start, not an error.
func (c *MapCache) replayManifest() {
	manifestPath := c.path + manifestName
	f, err := os.Open(manifestPath)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if c.entryCount >= c.diskCap {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		key := fields[0]
		el := c.diskList.PushFront(&diskEntry{key: key, entryNumber: n})
		c.diskIndex[key] = el
		c.entryCount++
	}

	os.Remove(manifestPath)
}

// Put inserts value under key. A no-op when the cache is inactive.
func (c *MapCache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		return
	}

	c.ramPut(key, value)

	if _, onDisk := c.diskIndex[key]; onDisk {
		return
	}
	c.diskPutNew(key, value)
}

// TryGet looks up key: RAM first (refreshing recency on hit), then
// disk (loading the blob, inserting into RAM, refreshing disk
// recency). Returns false on miss, including when inactive or key is
// empty.
func (c *MapCache) TryGet(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active || key == "" {
		return nil, false
	}

	if el, ok := c.ramIndex[key]; ok {
		c.ramList.MoveToFront(el)
		return el.Value.(*ramEntry).value, true
	}

	el, ok := c.diskIndex[key]
	if !ok {
		return nil, false
	}

	entry := el.Value.(*diskEntry)
	data, err := c.store.Load(strconv.Itoa(entry.entryNumber))
	if err != nil {
		return nil, false
	}

	c.diskList.MoveToFront(el)
	c.ramPut(key, data)
	return data, true
}

// ramPut inserts or refreshes key in the RAM level, evicting the
// least-recently-used entry (write-through to disk) when over ramCap.
func (c *MapCache) ramPut(key string, value []byte) {
	if el, ok := c.ramIndex[key]; ok {
		el.Value.(*ramEntry).value = value
		c.ramList.MoveToFront(el)
		return
	}

	el := c.ramList.PushFront(&ramEntry{key: key, value: value})
	c.ramIndex[key] = el

	if c.ramList.Len() <= c.ramCap {
		return
	}

	oldest := c.ramList.Back()
	c.ramList.Remove(oldest)
	evicted := oldest.Value.(*ramEntry)
	delete(c.ramIndex, evicted.key)
	c.onRAMEvict(evicted.key, evicted.value)
}

// onRAMEvict write-throughs an evicted RAM entry to disk, unless it is
// already on disk or disk has no spare capacity.
func (c *MapCache) onRAMEvict(key string, value []byte) {
	if _, onDisk := c.diskIndex[key]; onDisk {
		return
	}
	if c.entryCount >= c.diskCap {
		return
	}
	c.diskPutNew(key, value)
}

// diskPutNew allocates the next entry number for key, persists value
// via the BlobStore, and evicts the disk level's least-recently-used
// entry if that push crossed diskCap.
func (c *MapCache) diskPutNew(key string, value []byte) {
	n := c.entryCount
	c.entryCount++

	el := c.diskList.PushFront(&diskEntry{key: key, entryNumber: n})
	c.diskIndex[key] = el

	if err := c.store.Save(strconv.Itoa(n), value); err != nil {
		return
	}

	if c.diskList.Len() <= c.diskCap {
		return
	}

	oldest := c.diskList.Back()
	c.diskList.Remove(oldest)
	evicted := oldest.Value.(*diskEntry)
	delete(c.diskIndex, evicted.key)
	c.onDiskEvict(evicted.key, evicted.entryNumber)
}

// onDiskEvict either persists the evicted key/entry-number pair to the
// shutdown manifest (when on the final-clear path) or deletes the blob
// and frees its entry-number slot (ordinary eviction).
func (c *MapCache) onDiskEvict(key string, entryNumber int) {
	if c.onFinalClear {
		c.appendManifest(key, entryNumber)
		return
	}

	c.store.Delete(strconv.Itoa(entryNumber))
	c.entryCount--
}

func (c *MapCache) appendManifest(key string, entryNumber int) {
	f, err := os.OpenFile(c.path+manifestName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s %d\n", key, entryNumber)
}

// TurnOff deactivates the cache without losing its current state.
func (c *MapCache) TurnOff() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
}

// TurnOn reactivates the cache.
func (c *MapCache) TurnOn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = true
}

// SetDebugMode sets the debug flag that DebugMode reports. MapCache
// itself does not log and does not change its behaviour on the flag;
// nothing else in this module reads it.
func (c *MapCache) SetDebugMode(debug bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debug = debug
}

// DebugMode reports whether debug mode is enabled.
func (c *MapCache) DebugMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.debug
}

// Close persists the remaining disk-level entries to the shutdown
// manifest instead of deleting their blobs, then marks the cache
// inactive. Call this explicitly at shutdown; MapCache has no
// finalizer and does not rely on garbage-collector-driven cleanup.
func (c *MapCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.onFinalClear = true
	for el := c.diskList.Back(); el != nil; el = c.diskList.Back() {
		entry := el.Value.(*diskEntry)
		c.diskList.Remove(el)
		delete(c.diskIndex, entry.key)
		c.appendManifest(entry.key, entry.entryNumber)
	}
	c.active = false
	return nil
}

// RAMLen reports the current number of RAM-level entries.
func (c *MapCache) RAMLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ramList.Len()
}

// DiskLen reports the current number of disk-level entries.
func (c *MapCache) DiskLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.diskList.Len()
}
