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

package transform

import (
	"fmt"
	"strings"
)

// 📝 BuildPrompt composes the single user message sent for a request
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are a precise source code modification assistant. Modify the file below according to the instructions.\n\n")
	if req.Description != "" {
		fmt.Fprintf(&b, "Task: %s\n", req.Description)
	}
	fmt.Fprintf(&b, "Instruction: %s\n", req.Instruction)
	if req.Path != "" {
		fmt.Fprintf(&b, "File: %s\n", req.Path)
	}
	b.WriteString("\nOriginal content:\n")
	b.WriteString(req.OriginalContent)
	if !strings.HasSuffix(req.OriginalContent, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\nReturn only the complete modified file content. Do not include any explanation and do not wrap the result in markdown or code fences.\n")

	return b.String()
}
