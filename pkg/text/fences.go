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

// Package text holds the string clean-up applied to generated content before it is written.
package text

import (
	"strings"
)

const fence = "```"

// maxChatter bounds the non-empty prose lines accepted before an opening fence
// or after a closing fence ("Here is the updated file:" and similar).
const maxChatter = 3

// 🧹 StripFences removes the outer code fence of generated content. The opening
// line may carry any language tag and may follow a short preamble ending in ':';
// the closing line is only removed together with an opening one, along with a
// short postamble after it. It repeats until the content stops changing, so
// StripFences(StripFences(s)) == StripFences(s). Fences inside the content are kept.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	for {
		next := strings.TrimSpace(stripOuter(out))
		if next == out {
			return out
		}
		out = next
	}
}

// 🧽 DropFenceLines removes every line that is a fence delimiter on its own.
// Backticks inside a line of code are left alone.
func DropFenceLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isOpeningFence(line) || isClosingFence(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// HasFence reports whether a fence delimiter appears anywhere in s.
func HasFence(s string) bool {
	return strings.Contains(s, fence)
}

func stripOuter(s string) string {
	lines := strings.Split(s, "\n")

	open := openingIndex(lines)
	if open < 0 {
		return s
	}

	body := lines[open+1:]
	if end := closingIndex(body); end >= 0 {
		body = body[:end]
	}

	return strings.Join(body, "\n")
}

// openingIndex returns the line of the outer opening fence, or -1. A fence on the
// first line always counts; a later one only after a short preamble ending in ':'.
func openingIndex(lines []string) int {
	prose := 0
	last := ""
	for i, line := range lines {
		if isOpeningFence(line) {
			if i == 0 {
				return i
			}
			// a bare fence after "...:" may just be code, so it needs a closer to count
			if strings.HasSuffix(last, ":") && (fenceTag(line) != "" || closingIndex(lines[i+1:]) >= 0) {
				return i
			}
			return -1
		}
		if isClosingFence(line) {
			return -1
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			prose++
			last = trimmed
		}
		if prose > maxChatter {
			return -1
		}
	}
	return -1
}

// closingIndex returns the line of the last closing fence when at most a short
// postamble follows it, or -1.
func closingIndex(lines []string) int {
	prose := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if isClosingFence(lines[i]) {
			return i
		}
		if isOpeningFence(lines[i]) {
			return -1
		}
		if strings.TrimSpace(lines[i]) != "" {
			prose++
		}
		if prose > maxChatter {
			return -1
		}
	}
	return -1
}

// isOpeningFence matches "```" followed by an optional single-word tag
// ("```go", "```c++", "``` python").
func isOpeningFence(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, fence) {
		return false
	}
	return !strings.ContainsAny(fenceTag(line), "` \t")
}

func fenceTag(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "`"))
}

// isClosingFence matches a line made only of three or more backticks.
func isClosingFence(line string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= len(fence) && strings.Trim(line, "`") == ""
}
