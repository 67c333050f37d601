/*
Package status tracks what a scenereplace run did to each document and renders
change previews.

	            +-------------+
	            |   Tracker   |
	            | (per-doc)   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	| Formatter |           |  Diff   |
	| (summary) |           | (edits) |
	+-----------+           +---------+

🎯 Purpose:
- Records one DocumentInfo per document, safe for concurrent jobs
- Reports progress through the zerolog logger
- Renders replace.Edit values as inline diffs for --dry-run

🔄 Flow:
1. Start(total) before documents are processed
2. Track(info) as each document finishes
3. Totals/AllUnchanged/List drive the closing summary

🔍 Example:

	tracker := status.New(zerolog.Ctx(ctx))
	tracker.Start(ctx, len(files))
	tracker.Track(ctx, status.DocumentInfo{Path: "home.yaml", Status: status.StatusModified, Count: 2})

	fmt.Print(status.Render(result.Edits))
*/
package status
