/*
Package operation turns a find-and-replace request into edits on a scenegraph.

	+-------------+      +-------------+      +-------------+
	|  Collector  | ---> |  Operator   | ---> |   Engine    |
	|  (request)  |      | (validate,  |      | (replace    |
	+-------------+      |  scope)     |      |  all)       |
	                     +-------------+      +-------------+

🎯 Purpose:
- Validates the request before anything is touched
- Compiles the search text into a pattern
- Resolves the scope to a traversal root
- Runs the replace engine and reports zero matches

🔄 Flow:
1. Collect (a dismissed prompt ends here, without an error)
2. Validate find / replace text
3. Compile the pattern
4. Resolve the scope (whole document or focused artboard)
5. Replace all, then map a zero count to ErrNoOccurrencesFound

⚡ Errors:
- request.ErrEmptyFindText, request.ErrEmptyReplaceText, text.ErrInvalidPattern
  and ErrNoFocusedScope abort before the tree is touched
- ErrNoOccurrencesFound is returned after the walk, alongside the result

There is no rollback: edits are written in place as the walk goes.

🔍 Example:

	op, err := operation.New(operation.Options{
		Document:  doc,
		Collector: request.StaticCollector{Request: req},
	})
	if err != nil {
		return err
	}
	result, err := op.Run(ctx)
*/
package operation
