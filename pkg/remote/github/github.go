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

package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/walteh/editrc/pkg/fault"
	"github.com/walteh/editrc/pkg/remote"
	"gitlab.com/tozd/go/errors"
)

func init() {
	remote.Register("github", New)
}

var _ remote.Source = (*Source)(nil)

// 🎯 Source reads files from a GitHub repository through the contents API
type Source struct {
	client *github.Client
	owner  string
	repo   string
	ref    string
}

// 🏭 New creates a GitHub source. The token is optional; without it requests
// are unauthenticated and subject to the public rate limit.
func New(ctx context.Context, opts remote.Options) (remote.Source, error) {
	logger := zerolog.Ctx(ctx)

	owner, name, err := parseRepo(opts.Repo)
	if err != nil {
		return nil, errors.Errorf("parsing repo: %w", err)
	}

	client := github.NewClient(nil)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	} else {
		logger.Debug().Msg("no github token set, using unauthenticated requests")
	}

	if opts.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, errors.Errorf("parsing base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Source{
		client: client,
		owner:  owner,
		repo:   name,
		ref:    opts.Ref,
	}, nil
}

// 🔍 parseRepo splits "owner/name", also accepting a github.com URL
func parseRepo(repo string) (owner, name string, err error) {
	repo = strings.TrimSuffix(strings.TrimSpace(repo), ".git")
	repo = strings.TrimPrefix(repo, "https://")
	repo = strings.TrimPrefix(repo, "github.com/")

	parts := strings.Split(strings.Trim(repo, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Errorf("invalid repository format: %q (want owner/name)", repo)
	}

	return parts[0], parts[1], nil
}

// 📝 Name returns owner/repo[@ref]
func (s *Source) Name() string {
	name := fmt.Sprintf("%s/%s", s.owner, s.repo)
	if s.ref != "" {
		name += "@" + s.ref
	}
	return name
}

// 📄 GetFile retrieves a single file's contents
func (s *Source) GetFile(ctx context.Context, path string) (string, error) {
	var opts *github.RepositoryContentGetOptions
	if s.ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: s.ref}
	}

	file, dir, resp, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		status := 0
		if resp != nil && resp.Response != nil {
			status = resp.StatusCode
		}
		return "", fault.Remote(status, errors.Errorf("getting %s: %w", path, err))
	}

	if file == nil {
		if dir != nil {
			return "", fault.New(fault.KindRemoteContentMissing, path, errors.New("path is a directory"))
		}
		return "", fault.New(fault.KindRemoteContentMissing, path, errors.New("no file content returned"))
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fault.New(fault.KindRemoteContentMissing, path, errors.Errorf("decoding content: %w", err))
	}

	zerolog.Ctx(ctx).Debug().
		Str("repo", s.Name()).
		Str("path", path).
		Str("sha", file.GetSHA()).
		Int("status", statusOf(resp)).
		Msg("fetched file content")

	return content, nil
}

func statusOf(resp *github.Response) int {
	if resp == nil || resp.Response == nil {
		return http.StatusOK
	}
	return resp.StatusCode
}
