// Package shutdown tears a task-list session down in order.
//
// Handlers are registered with a phase. Lower phases run first and
// handlers in the same phase run concurrently:
//
//	coord := shutdown.NewCoordinator(shutdown.DefaultConfig(), logger)
//	coord.RegisterFunc("console", 10, stopConsole)
//	coord.RegisterFunc("summary-pdf", 20, writeSummary)
//	coord.RegisterFunc("search-index", 30, closeIndex)
//	coord.HandleSignals()
//
// Shutdown runs at most once, whether it comes from a signal or from the
// program reaching the end of input.
package shutdown
