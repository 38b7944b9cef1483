package sim

import (
	"strconv"
	"strings"
	"time"

	"github.com/scottcagno/hashtrace/pkg/logging"
)

const (
	// table defaults
	defaultTableSize = 20
	defaultNumKeys   = 18
	defaultSeed      = 42
	defaultHash      = "fnv1a"

	// playback defaults
	defaultInterval = 500 * time.Millisecond

	// bounds
	maxTableSize = 1 << 12
	minInterval  = 10 * time.Millisecond
	maxInterval  = 10 * time.Second
)

// default config
var defaultConfig = &Config{
	TableSize: defaultTableSize,
	NumKeys:   defaultNumKeys,
	Seed:      defaultSeed,
	Hash:      defaultHash,
	Interval:  defaultInterval,
}

// DefaultConfig returns a copy of the default settings: 18 shuffled keys
// in a table of 20 buckets, hashed with FNV-1a, ticking every 500ms
func DefaultConfig() *Config {
	c := *defaultConfig
	return &c
}

// Config holds the settings for a simulation Session
type Config struct {
	TableSize   int                  // number of buckets
	NumKeys     int                  // generated keys, ignored when Keys is set
	Seed        int64                // shuffle seed for generated keys
	Keys        []string             // explicit keys, in insertion order
	Hash        string               // name of the hash function, see hash.Names
	Interval    time.Duration        // timer tick interval
	StartPaused bool                 // begin playback paused
	Logger      *logging.LevelLogger // logger
}

func (conf *Config) String() string {
	var sb strings.Builder
	sb.WriteString("TableSize: ")
	sb.WriteString(strconv.Itoa(conf.TableSize))
	sb.WriteString("\n")
	sb.WriteString("NumKeys: ")
	sb.WriteString(strconv.Itoa(conf.NumKeys))
	sb.WriteString("\n")
	sb.WriteString("Seed: ")
	sb.WriteString(strconv.FormatInt(conf.Seed, 10))
	sb.WriteString("\n")
	if len(conf.Keys) > 0 {
		sb.WriteString("Keys: ")
		sb.WriteString(strings.Join(conf.Keys, ","))
		sb.WriteString("\n")
	}
	sb.WriteString("Hash: ")
	sb.WriteString(conf.Hash)
	sb.WriteString("\n")
	sb.WriteString("Interval: ")
	sb.WriteString(conf.Interval.String())
	sb.WriteString("\n")
	sb.WriteString("StartPaused: ")
	sb.WriteString(strconv.FormatBool(conf.StartPaused))
	return sb.String()
}

// checkConfig is a helper to make sure the configuration options are
// usable and fills in any missing options. TableSize is never defaulted
// on a non-nil config, so a zero or negative size reaches the generator
// and is reported as an invalid configuration.
func checkConfig(conf *Config) *Config {
	if conf == nil {
		c := *defaultConfig
		c.Logger = logging.Discard()
		return &c
	}
	c := *conf
	if c.NumKeys <= 0 && len(c.Keys) == 0 && c.TableSize > 0 {
		// fill the table to 90%, which is 18 keys for the default size
		c.NumKeys = defaultNumKeys * c.TableSize / defaultTableSize
		if c.NumKeys < 1 {
			c.NumKeys = 1
		}
	}
	if c.Hash == *new(string) {
		c.Hash = defaultHash
	}
	if c.Interval <= 0 {
		c.Interval = defaultInterval
	}
	if c.Interval < minInterval {
		c.Interval = minInterval
	}
	if c.Interval > maxInterval {
		c.Interval = maxInterval
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
	return &c
}
