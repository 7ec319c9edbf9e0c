package traversal

// AdvanceGeneration simulates a newer frame starting while a traversal is suspended.
func (e *Engine) AdvanceGeneration(frame uint64) {
	e.generation.Store(frame)
}
