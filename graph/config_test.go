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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemoryLimit(t *testing.T) {
	for value, want := range map[string]uint64{
		"":       0,
		"0":      0,
		"1024":   1024,
		"1KiB":   1024,
		"64MiB":  64 << 20,
		"1.5 GB": 1_500_000_000,
	} {
		got, err := ParseMemoryLimit(value)
		require.NoErrorf(t, err, "ParseMemoryLimit(%q)", value)
		assert.Equalf(t, want, got, "ParseMemoryLimit(%q)", value)
	}
	_, err := ParseMemoryLimit("lots")
	require.Error(t, err)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvSeed, "17")
	t.Setenv(EnvMemoryLimit, "1KiB")
	cfg := ConfigFromEnv()
	assert.Equal(t, int64(17), cfg.Seed)
	assert.Equal(t, uint64(1024), cfg.MemoryLimit)

	g := New("env")
	defer g.Finalize()
	assert.Equal(t, int64(17), g.Seed())
	assert.Equal(t, uint64(1024), g.MemoryLimit())
	assert.Equal(t, "1.0 kB", limitToString(g.MemoryLimit()))
	assert.Equal(t, "none", limitToString(0))

	// Invalid values are ignored.
	t.Setenv(EnvSeed, "not a number")
	t.Setenv(EnvMemoryLimit, "lots")
	cfg = ConfigFromEnv()
	assert.Zero(t, cfg.MemoryLimit)
	assert.NotEqual(t, int64(17), cfg.Seed)
}
