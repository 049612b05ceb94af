// Package cache provides a data cache model using Akita cache components.
//
// The cache sits between a memory-stage client and the emulator's memory
// bank. It keeps real data so that reads observe earlier writes, and it
// counts hits, misses and writebacks with configurable latencies.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/rv32core/emu"
	"github.com/sarchlab/rv32core/fault"
)

// Config holds cache configuration parameters.
type Config struct {
	// Size in bytes
	Size int `json:"size"`
	// Associativity (number of ways)
	Associativity int `json:"associativity"`
	// BlockSize in bytes (cache line size)
	BlockSize int `json:"block_size"`
	// HitLatency in cycles
	HitLatency uint64 `json:"hit_latency"`
	// MissLatency in cycles (includes memory access time)
	MissLatency uint64 `json:"miss_latency"`
}

// DefaultConfig returns a small data cache sized for the default
// 51200-byte bank: 4KB, 4-way, 64B lines.
func DefaultConfig() Config {
	return Config{
		Size:          4 * 1024,
		Associativity: 4,
		BlockSize:     64,
		HitLatency:    1,
		MissLatency:   10,
	}
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Latency is the number of cycles this access takes.
	Latency uint64
	// Data is the value read (for loads).
	Data uint32
	// Evicted is true if a valid block was replaced.
	Evicted bool
	// EvictedAddr is the address of the evicted block (if Evicted is true).
	EvictedAddr uint32
}

// Statistics holds cache performance statistics.
type Statistics struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}

// BackingStore is the next level in the memory hierarchy.
type BackingStore interface {
	// Read fetches size bytes starting at addr.
	Read(addr uint32, size int) ([]byte, error)
	// Write stores data starting at addr.
	Write(addr uint32, data []byte) error
}

// Cache is a write-back, write-allocate, set-associative cache whose tags
// and LRU state live in an Akita directory.
type Cache struct {
	config Config

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	// Data storage - indexed by (setID * associativity + wayID)
	dataStore [][]byte

	stats   Statistics
	backing BackingStore
}

// New creates a new cache with the given configuration.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]byte, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]byte, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns cache statistics.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears cache statistics.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

func (c *Cache) blockAddr(addr uint32) uint64 {
	size := uint64(c.config.BlockSize)
	return uint64(addr) / size * size
}

// checkAccess rejects widths outside 1/2/4 and accesses crossing a line.
func (c *Cache) checkAccess(addr uint32, width emu.DataWidth) error {
	if !width.Valid() {
		return fault.New(fault.IllegalValue, "cache access", "width %d", width)
	}

	offset := int(addr) % c.config.BlockSize
	if offset+int(width) > c.config.BlockSize {
		return fault.New(fault.IllegalValue, "cache access",
			"%d bytes at 0x%x cross a %d-byte line", width, addr, c.config.BlockSize)
	}
	return nil
}

// Read performs a cache read of width bytes at addr.
func (c *Cache) Read(addr uint32, width emu.DataWidth) (AccessResult, error) {
	if err := c.checkAccess(addr, width); err != nil {
		return AccessResult{}, err
	}

	c.stats.Reads++

	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)

		offset := int(addr) % c.config.BlockSize
		data := extractData(c.dataStore[c.blockIndex(block)], offset, width)

		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
			Data:    data,
		}, nil
	}

	c.stats.Misses++
	return c.handleMiss(addr, width, false, 0)
}

// Write performs a cache write of the low width bytes of data at addr.
// On a miss the line is fetched first.
func (c *Cache) Write(addr uint32, width emu.DataWidth, data uint32) (AccessResult, error) {
	if err := c.checkAccess(addr, width); err != nil {
		return AccessResult{}, err
	}

	c.stats.Writes++

	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)

		offset := int(addr) % c.config.BlockSize
		storeData(c.dataStore[c.blockIndex(block)], offset, width, data)
		block.IsDirty = true

		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
		}, nil
	}

	c.stats.Misses++
	return c.handleMiss(addr, width, true, data)
}

// handleMiss fills a line from the backing store, writing back the victim
// first if it is dirty.
func (c *Cache) handleMiss(
	addr uint32,
	width emu.DataWidth,
	isWrite bool,
	writeData uint32,
) (AccessResult, error) {
	result := AccessResult{
		Hit:     false,
		Latency: c.config.MissLatency,
	}

	blockAddr := c.blockAddr(addr)

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result, nil
	}

	victimData := c.dataStore[c.blockIndex(victim)]

	// Fetch before touching the victim so a failing fill leaves the cache
	// unchanged.
	var fill []byte
	if c.backing != nil {
		var err error
		fill, err = c.backing.Read(uint32(blockAddr), c.config.BlockSize)
		if err != nil {
			return AccessResult{}, err
		}
	}

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = uint32(victim.Tag)

		if victim.IsDirty && c.backing != nil {
			if err := c.backing.Write(uint32(victim.Tag), victimData); err != nil {
				return AccessResult{}, err
			}
			c.stats.Writebacks++
		}
	}

	if fill != nil {
		copy(victimData, fill)
	} else {
		clear(victimData)
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false

	offset := int(addr) % c.config.BlockSize
	if isWrite {
		storeData(victimData, offset, width, writeData)
		victim.IsDirty = true
	} else {
		result.Data = extractData(victimData, offset, width)
	}

	c.directory.Visit(victim)

	return result, nil
}

// Invalidate marks the line holding addr as invalid without writeback.
func (c *Cache) Invalidate(addr uint32) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Flush writes back all dirty lines and invalidates every line.
func (c *Cache) Flush() error {
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty && c.backing != nil {
				blockData := c.dataStore[c.blockIndex(block)]
				if err := c.backing.Write(uint32(block.Tag), blockData); err != nil {
					return err
				}
				c.stats.Writebacks++
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}
	return nil
}

// Reset invalidates all lines without writeback and clears statistics.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}

// extractData reads a little-endian value of the given width.
func extractData(data []byte, offset int, width emu.DataWidth) uint32 {
	var result uint32
	for i := int(width) - 1; i >= 0; i-- {
		result = result<<8 | uint32(data[offset+i])
	}
	return result
}

// storeData writes the low width bytes of value little-endian.
func storeData(data []byte, offset int, width emu.DataWidth, value uint32) {
	for i := 0; i < int(width); i++ {
		data[offset+i] = byte(value >> (i * 8))
	}
}
