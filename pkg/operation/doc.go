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

/*
Package operation applies an edit batch to a project tree, one descriptor at a time.

🎯 Purpose:
- Runs every descriptor of a batch in declared order
- Reads the target, asks the transformer for new content, writes it back
- Stops the whole run on the first failure

🔄 Flow per descriptor:
1. Reading: the store returns the current content
2. Transforming: the transformer returns replacement content
3. Writing: the store replaces the file
4. Recorded: the success counter is incremented

Any failure in steps 1-3 aborts the run with an *AbortError naming the
descriptor index and stage. Descriptors after the failing one are never read.
Earlier writes are kept; there is no rollback.

🤝 Interfaces:
- Store: project file access (see pkg/store)
- Transformer: remote rewrite (see pkg/transform)
- Reporter: progress output (see pkg/log)

🔍 Example:

	exec, err := operation.New(operation.Options{
		Store:       st,
		Transformer: client,
		Reporter:    logger,
	})
	if err != nil {
		return err
	}

	report, err := exec.Run(ctx, batch)
	if err != nil {
		var abort *operation.AbortError
		if errors.As(err, &abort) {
			// abort.Index, abort.Stage, abort.Err
		}
	}
	fmt.Printf("%d/%d applied\n", report.Successes, report.Total)
*/
package operation
