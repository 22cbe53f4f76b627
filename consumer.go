package sigcore

import "github.com/AnatoleLucet/sigcore/internal"

// Node is the untyped part of a signal or computed. Consumers receive nodes
// through AddDependency and may Subscribe to them.
type Node = internal.Node

// Consumer is a tracked evaluation. While it is current, every signal or
// computed read calls AddDependency with its node.
type Consumer = internal.Consumer

// CurrentConsumer returns the consumer currently tracking reads, or nil.
func CurrentConsumer() Consumer {
	return internal.GetRuntime().CurrentConsumer()
}

// SetCurrentConsumer replaces the current consumer and returns the previous one,
// which the caller must restore. Prefer RunTracked.
func SetCurrentConsumer(c Consumer) (prev Consumer) {
	return internal.GetRuntime().Tracker().SetConsumer(c)
}

// RunTracked runs fn with c as the current consumer, restoring the previous
// one afterwards even if fn panics.
func RunTracked(c Consumer, fn func()) {
	internal.GetRuntime().Tracker().RunWithConsumer(c, fn)
}

// TrackDependency reports n to the current consumer, if any.
func TrackDependency(n *Node) {
	internal.GetRuntime().Tracker().Track(n)
}
