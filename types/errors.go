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

package types

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for arguments a query can never satisfy,
// such as a negative page size.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgument returns an error wrapping ErrInvalidArgument.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Query operations reported in QueryError.Op.
const (
	OpCount = "count"
	OpFind  = "find"
)

// SQLErrorKind classifies a driver error.
type SQLErrorKind int

const (
	UnknownErr SQLErrorKind = iota
	NoRowsErr
	NoColumnErr
	NoTableErr
	SyntaxErr
	ConnectionErr
	TimeoutErr
	CanceledErr
)

func (k SQLErrorKind) String() string {
	switch k {
	case NoRowsErr:
		return "no_rows"
	case NoColumnErr:
		return "no_column"
	case NoTableErr:
		return "no_table"
	case SyntaxErr:
		return "syntax"
	case ConnectionErr:
		return "connection"
	case TimeoutErr:
		return "timeout"
	case CanceledErr:
		return "canceled"
	default:
		return "unknown"
	}
}

// QueryError reports a failed count or find query.
type QueryError struct {
	Op   string
	Kind SQLErrorKind
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err as a QueryError. An err that already is a
// QueryError is returned unchanged.
func NewQueryError(op string, kind SQLErrorKind, err error) error {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &QueryError{Op: op, Kind: kind, Err: err}
}

// IsQueryError reports whether err is, or wraps, a QueryError.
func IsQueryError(err error) (*QueryError, bool) {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe, true
	}
	return nil, false
}
