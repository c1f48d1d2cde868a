// cache.go - 增量输出缓存
//
// 记录输出目录中每个文件的内容摘要。重新构建时，内容没有变化
// 且磁盘上的文件仍然完好的单元不再重写，保留原来的修改时间，
// 下游的 Jasmin 汇编可以据此跳过未变化的类。
//
// 索引保存在输出目录的 .sophia-cache.json 中。

package compiler

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/segmentio/encoding/json"
	"golang.org/x/crypto/blake2b"
)

const (
	// CacheVersion 缓存版本，版本不匹配时整个索引作废
	CacheVersion = "1"

	// CacheFileName 索引文件名
	CacheFileName = ".sophia-cache.json"
)

// OutputCache 输出缓存
type OutputCache struct {
	mu    sync.Mutex
	dir   string
	index *CacheIndex
	dirty bool
}

// CacheIndex 缓存索引
type CacheIndex struct {
	Version   string                 `json:"version"`
	Entries   map[string]*CacheEntry `json:"entries"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CacheEntry 一个输出文件的记录
type CacheEntry struct {
	Digest    string    `json:"digest"`
	Size      int64     `json:"size"`
	WrittenAt time.Time `json:"written_at"`
}

// OpenCache 打开输出目录中的缓存
//
// 索引不存在、损坏或版本不符时从空索引开始，不视为错误。
func OpenCache(dir string) *OutputCache {
	c := &OutputCache{dir: dir}
	if err := c.loadIndex(); err != nil || c.index.Version != CacheVersion {
		c.index = newIndex()
		c.dirty = true
	}
	return c
}

func newIndex() *CacheIndex {
	return &CacheIndex{Version: CacheVersion, Entries: make(map[string]*CacheEntry)}
}

// Digest 计算内容摘要
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Unchanged 判断 name 的现有输出是否与 data 相同
//
// 除了摘要一致，磁盘上的文件也必须存在且大小一致。
func (c *OutputCache) Unchanged(name string, data []byte) bool {
	c.mu.Lock()
	entry, ok := c.index.Entries[name]
	c.mu.Unlock()
	if !ok || entry.Size != int64(len(data)) || entry.Digest != Digest(data) {
		return false
	}
	info, err := os.Stat(filepath.Join(c.dir, name))
	return err == nil && info.Mode().IsRegular() && info.Size() == entry.Size
}

// Record 记录刚写入的内容
func (c *OutputCache) Record(name string, data []byte) {
	entry := &CacheEntry{
		Digest:    Digest(data),
		Size:      int64(len(data)),
		WrittenAt: time.Now(),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.Entries[name] = entry
	c.dirty = true
}

// Forget 删除记录
func (c *OutputCache) Forget(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.index.Entries[name]; ok {
		delete(c.index.Entries, name)
		c.dirty = true
	}
}

// Save 索引有变化时写回磁盘
func (c *OutputCache) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	c.index.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(c.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, CacheFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache index: %w", err)
	}
	c.dirty = false
	return nil
}

// loadIndex 加载缓存索引
func (c *OutputCache) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(c.dir, CacheFileName))
	if err != nil {
		c.index = newIndex()
		return err
	}
	c.index = &CacheIndex{}
	if err := json.Unmarshal(data, c.index); err != nil {
		c.index = newIndex()
		return err
	}
	if c.index.Entries == nil {
		c.index.Entries = make(map[string]*CacheEntry)
	}
	return nil
}
