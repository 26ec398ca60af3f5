// Package tasks runs the bulk playlist replace operation.
//
// A replace clears the target playlist item by item, then inserts the
// extracted videos sequentially so the playlist ends up in paste order. Only
// one replace may run at a time; a second call fails immediately with
// shared.ErrReplaceInProgress.
//
// Failure handling is asymmetric on purpose. Losing a page listing during
// the delete phase aborts the run, because continuing would interleave old
// and new items. A single failed delete or insert is skipped and counted. An
// expired credential aborts the run and logs the session out, so the next
// command starts from a clean unauthenticated state.
package tasks
