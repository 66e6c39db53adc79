// Package keygen generates identifiers and writes them into key properties
// through a schema.Descriptor.
package keygen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces key values.
type Generator interface {
	Generate() (any, error)
	Name() string
}

// UUIDGenerator generates UUID v4 values
type UUIDGenerator struct{}

func (g UUIDGenerator) Generate() (any, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id, nil
}

func (g UUIDGenerator) Name() string {
	return "uuid"
}

// ULIDGenerator generates monotonic ULID values. It is safe for concurrent
// use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *ULIDGenerator) Generate() (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id, nil
}

func (g *ULIDGenerator) Name() string {
	return "ulid"
}

// ErrClockMovedBackwards is returned by SnowflakeGenerator when the wall
// clock reads earlier than the last issued ID.
var ErrClockMovedBackwards = errors.New("clock moved backwards")

// ErrBeforeEpoch is returned by SnowflakeGenerator when the wall clock reads
// earlier than SnowflakeEpoch.
var ErrBeforeEpoch = errors.New("clock reads before snowflake epoch")

// SnowflakeEpoch is the custom epoch of snowflake IDs, 2023-01-01 UTC.
var SnowflakeEpoch = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

// SnowflakeGenerator generates Twitter Snowflake-like int64 IDs:
// 41 bits of milliseconds since SnowflakeEpoch, 10 bits of machine ID and a
// 12 bit sequence.
type SnowflakeGenerator struct {
	mu        sync.Mutex
	machineID uint64
	sequence  uint64
	lastTime  uint64
	epoch     uint64
	now       func() time.Time
}

func NewSnowflakeGenerator(machineID uint64) *SnowflakeGenerator {
	return &SnowflakeGenerator{
		machineID: machineID & 0x3FF,
		epoch:     uint64(SnowflakeEpoch.UnixMilli()),
		now:       time.Now,
	}
}

func (g *SnowflakeGenerator) Generate() (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms < 0 || uint64(ms) < g.epoch {
		return nil, ErrBeforeEpoch
	}
	now := uint64(ms)
	if now < g.lastTime {
		return nil, ErrClockMovedBackwards
	}

	if now == g.lastTime {
		g.sequence = (g.sequence + 1) & 0xFFF
		if g.sequence == 0 {
			// Sequence exhausted; wait for the next millisecond.
			for now <= g.lastTime {
				now = uint64(g.now().UnixMilli())
			}
		}
	} else {
		g.sequence = 0
	}
	g.lastTime = now

	id := ((now - g.epoch) << 22) | (g.machineID << 12) | g.sequence
	return int64(id), nil
}

func (g *SnowflakeGenerator) Name() string {
	return "snowflake"
}

const (
	DefaultNanoIDSize     = 21
	DefaultNanoIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// NanoIDGenerator generates NanoID strings
type NanoIDGenerator struct {
	size     int
	alphabet string
}

func NewNanoIDGenerator(size int, alphabet string) *NanoIDGenerator {
	if size <= 0 {
		size = DefaultNanoIDSize
	}
	if alphabet == "" {
		alphabet = DefaultNanoIDAlphabet
	}
	return &NanoIDGenerator{size: size, alphabet: alphabet}
}

func (g *NanoIDGenerator) Generate() (any, error) {
	bytes := make([]byte, g.size)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}

	id := make([]byte, g.size)
	for i := 0; i < g.size; i++ {
		id[i] = g.alphabet[int(bytes[i])%len(g.alphabet)]
	}
	return string(id), nil
}

func (g *NanoIDGenerator) Name() string {
	return "nanoid"
}
