/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pagination

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptions(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		limit    Size
		maxLimit Size
	}{
		{"empty", "", DefaultLimit, 0},
		{"integer", "limit: 20\n", 20, 0},
		{"quoted", "limit: '10'\n", 10, 0},
		{"with cap", "limit: 5\nmax_limit: 50\n", 5, 50},
		{"attachment", "paginate:\n  options:\n    limit: '15'\n", 15, 0},
		{"attachment without limit", "paginate:\n  options:\n    max_limit: 30\n", DefaultLimit, 30},
		{"zero", "limit: 0\n", DefaultLimit, 0},
		{"attachment zero", "paginate:\n  options:\n    limit: 0\n", DefaultLimit, 0},
		{"quoted zero", "limit: '0'\n", DefaultLimit, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := ParseOptions([]byte(tc.doc))
			require.NoError(t, err)
			assert.Equal(t, tc.limit, opts.Limit)
			assert.Equal(t, tc.maxLimit, opts.MaxLimit)
		})
	}
}

func TestParseOptionsInvalid(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not a number", "limit: ten\n"},
		{"negative", "limit: -5\n"},
		{"attachment negative", "paginate:\n  options:\n    limit: -5\n"},
		{"cap below limit", "limit: 20\nmax_limit: 10\n"},
		{"malformed", "limit: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOptions([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestParseOptionsEnvOverride(t *testing.T) {
	t.Setenv("PAGINATE_LIMIT", "30")
	t.Setenv("PAGINATE_MAX_LIMIT", "60")

	opts, err := ParseOptions([]byte("limit: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, Size(30), opts.Limit)
	assert.Equal(t, Size(60), opts.MaxLimit)
}

func TestDefaultOptionsEnvOverride(t *testing.T) {
	t.Setenv("PAGINATE_LIMIT", "25")
	t.Setenv("PAGINATE_MAX_LIMIT", "40")

	opts := DefaultOptions()
	assert.Equal(t, Size(25), opts.Limit)
	assert.Equal(t, Size(40), opts.MaxLimit)

	p, err := New[item](newMemorySource(1), nil)
	require.NoError(t, err)
	assert.Equal(t, Size(25), p.Options().Limit)
}

func TestDefaultOptionsIgnoresInvalidEnv(t *testing.T) {
	t.Setenv("PAGINATE_LIMIT", "20")
	t.Setenv("PAGINATE_MAX_LIMIT", "5")

	assert.Equal(t, &Options{Limit: DefaultLimit}, DefaultOptions())

	_, err := ParseOptions([]byte("limit: 10\n"))
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paginate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paginate:\n  options:\n    limit: '10'\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, Size(10), opts.Limit)

	_, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
