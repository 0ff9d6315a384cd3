// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fault defines the error kinds produced by the modification pipeline.
// Every fallible step returns a *Error so callers can branch on Kind without
// string matching.
package fault

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind identifies which pipeline stage failed and why
type Kind int

const (
	KindUnknown Kind = iota
	KindConfig
	KindMissingCredential
	KindRead
	KindRemote
	KindRemoteContentMissing
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindMissingCredential:
		return "MissingCredential"
	case KindRead:
		return "ReadError"
	case KindRemote:
		return "RemoteError"
	case KindRemoteContentMissing:
		return "RemoteContentMissing"
	case KindWrite:
		return "WriteError"
	default:
		return "UnknownError"
	}
}

// ❌ Error is a pipeline failure tagged with its Kind
type Error struct {
	Kind   Kind
	Path   string // file or descriptor location the failure relates to, may be empty
	Status int    // remote status code, only meaningful for KindRemote (0 = transport failure)
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindRemote {
		msg = fmt.Sprintf("%s(%d)", msg, e.Status)
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// 🏭 New creates a tagged error
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Remote creates a RemoteError. A status of 0 means the request never got a response.
func Remote(status int, err error) *Error {
	return &Error{Kind: KindRemote, Status: status, Err: err}
}

// Config is shorthand for a ConfigError with a formatted cause.
func Config(path string, format string, args ...any) *Error {
	return &Error{Kind: KindConfig, Path: path, Err: errors.Errorf(format, args...)}
}

// 🔍 KindOf returns the kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf returns the remote status code in err's chain, or -1 if err is not a RemoteError.
func StatusOf(err error) int {
	var fe *Error
	if errors.As(err, &fe) && fe.Kind == KindRemote {
		return fe.Status
	}
	return -1
}
