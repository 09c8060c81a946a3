// Package loop provides the single-threaded event loop that owns an
// editor's tree and selection.
//
// All tree mutation runs on the loop. The only asynchrony is deferral:
// Defer queues a task for the next tick and AfterFunc queues one after a
// delay. Both run on the loop, never concurrently with other tasks.
// Post may be called from any goroutine, which is how input from a
// terminal or network reader reaches the loop.
//
// A real loop is driven by Run:
//
//	l := loop.New()
//	go readInput(func(ev Event) { l.Post(func() { handle(ev) }) })
//	err := l.Run(ctx)
//
// Tests use a manual loop whose clock only moves when told to:
//
//	l := loop.NewManual(time.Unix(0, 0))
//	l.AfterFunc(time.Second, fire)
//	l.Advance(time.Second) // fire runs here
//
// Tasks queued while a tick runs are executed on the following tick.
package loop
