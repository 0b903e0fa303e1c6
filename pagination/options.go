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
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tomoncle/bunpage/utils"
	"gopkg.in/yaml.v3"
)

// DefaultLimit is the page size used when neither the caller nor the
// configuration provides one.
const DefaultLimit = 10

// Options configures a Paginator.
type Options struct {
	// Limit is the page size applied when Paginate is called with limit 0.
	Limit Size `yaml:"limit" json:"limit" validate:"gte=1"`
	// MaxLimit caps caller-supplied limits. Zero disables the cap.
	MaxLimit Size `yaml:"max_limit" json:"max_limit" validate:"omitempty,gtefield=Limit"`
}

// Size is a page size that also decodes from a quoted number, so both
// `limit: 10` and `limit: '10'` are accepted.
type Size int

func (s *Size) UnmarshalYAML(value *yaml.Node) error {
	raw := strings.TrimSpace(value.Value)
	if raw == "" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("line %d: page size %q is not an integer", value.Line, value.Value)
	}
	*s = Size(n)
	return nil
}

// DefaultOptions returns options with the default page size and no cap,
// adjusted by the PAGINATE_LIMIT and PAGINATE_MAX_LIMIT environment variables.
// Environment values that do not validate are ignored with a warning.
func DefaultOptions() *Options {
	opts := &Options{Limit: DefaultLimit}
	opts.applyEnv()
	if err := opts.Validate(); err != nil {
		utils.NewLogger("PAGINATE").WithError(err).Warn("ignoring pagination environment overrides")
		return &Options{Limit: DefaultLimit}
	}
	return opts
}

// Validate checks the options against their struct constraints.
func (o *Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("invalid pagination options: %w", err)
	}
	return nil
}

// document mirrors the attachment shape `paginate: {options: {limit: ...}}`
// while still accepting bare options at the top level.
type document struct {
	Paginate *struct {
		Options *Options `yaml:"options"`
	} `yaml:"paginate"`
	Options `yaml:",inline"`
}

// ParseOptions decodes YAML options, applies the PAGINATE_LIMIT and
// PAGINATE_MAX_LIMIT environment overrides and validates the result. A missing
// or zero limit selects DefaultLimit in either document shape, the same way a
// zero limit passed to Paginate selects the configured size.
func ParseOptions(data []byte) (*Options, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse pagination options: %w", err)
	}
	opts := doc.Options
	if doc.Paginate != nil && doc.Paginate.Options != nil {
		opts = *doc.Paginate.Options
	}
	if opts.Limit == 0 {
		opts.Limit = DefaultLimit
	}
	opts.applyEnv()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// LoadOptions reads options from a YAML file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pagination options: %w", err)
	}
	return ParseOptions(data)
}

func (o *Options) applyEnv() {
	o.Limit = Size(utils.EnvDefaultInt("PAGINATE_LIMIT", int(o.Limit)))
	o.MaxLimit = Size(utils.EnvDefaultInt("PAGINATE_MAX_LIMIT", int(o.MaxLimit)))
}
