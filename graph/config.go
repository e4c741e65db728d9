/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package graph

import (
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// EnvSeed is the environment variable with the default random seed of new graphs.
	EnvSeed = "TENSORGRAPH_SEED"

	// EnvMemoryLimit is the environment variable with the default memory limit of new graphs.
	// It accepts human-readable values, like "512MiB" or "2GB". Empty or "0" means no limit.
	EnvMemoryLimit = "TENSORGRAPH_MEMORY_LIMIT"
)

// Config holds the defaults used by New.
type Config struct {
	// Seed for the random number generator of the graph.
	Seed int64

	// MemoryLimit in bytes, 0 for no limit.
	MemoryLimit uint64
}

// ConfigFromEnv returns the defaults for new graphs, read from the environment variables EnvSeed and EnvMemoryLimit.
//
// If EnvSeed is not set, the seed is taken from the clock. Invalid values are logged and ignored.
func ConfigFromEnv() Config {
	cfg := Config{Seed: time.Now().UnixNano()}
	if value, found := os.LookupEnv(EnvSeed); found {
		seed, err := ParseSeed(value)
		if err != nil {
			klog.Warningf("ignoring $%s: %v", EnvSeed, err)
		} else {
			cfg.Seed = seed
		}
	}
	if value, found := os.LookupEnv(EnvMemoryLimit); found {
		limit, err := ParseMemoryLimit(value)
		if err != nil {
			klog.Warningf("ignoring $%s: %v", EnvMemoryLimit, err)
		} else {
			cfg.MemoryLimit = limit
		}
	}
	return cfg
}

// ParseSeed parses a random seed given as a decimal integer.
func ParseSeed(value string) (int64, error) {
	seed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid seed %q", value)
	}
	return seed, nil
}

// ParseMemoryLimit parses a human-readable number of bytes (e.g.: "64MiB", "1.5GB", "1024").
// An empty string means no limit, and returns 0.
func ParseMemoryLimit(value string) (uint64, error) {
	if value == "" {
		return 0, nil
	}
	limit, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid memory limit %q", value)
	}
	return limit, nil
}

// limitToString returns a human-readable memory limit.
func limitToString(limit uint64) string {
	if limit == 0 {
		return "none"
	}
	return humanize.Bytes(limit)
}
