// Package tasks provides the in-memory task list.
//
// A Store keeps tasks in insertion order and hands out ids from a counter
// that starts at 1 and only ever grows, so ids are never reused, not even
// after ClearAll.
//
// # Basic Usage
//
//	store := tasks.NewStore()
//
//	milk, err := store.Add("Buy milk", tasks.PriorityHigh)
//	if errors.Is(err, tasks.ErrInvalidInput) {
//	    // empty text or unknown priority; nothing changed
//	}
//
//	store.Toggle(milk.ID)       // false if the id is unknown
//	store.Remove(milk.ID)       // false if the id is unknown
//	store.ClearCompleted()      // number removed
//	store.ClearAll()            // prior length
//
//	stats := store.Stats()
//	fmt.Println(stats.CompletionRate, stats.PriorityCounts[tasks.PriorityHigh])
//
// # Task Lifecycle
//
// Tasks are created only by Add, changed only by Toggle and destroyed only
// by Remove, ClearCompleted and ClearAll. Read methods return copies.
//
// The store sends no change notifications. Whoever displays it calls List
// and Stats again after each mutation.
//
// # Thread Safety
//
// A Store is meant to be owned by a single session, but all methods are
// safe for concurrent use.
package tasks
