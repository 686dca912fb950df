package houdini

// ConcurrentInferenceHooks are the no-op extension points spec.md §4.F
// reserves for sharing progress between peer engines running in parallel
// (explicitly out of scope here; spec.md §1 "Non-goals" — "parallel
// inference across solver instances (a hook is exposed but not
// implemented)"). Embedding the zero value in an Engine gives every hook a
// harmless default; a parallel driver overrides the fields it needs.
type ConcurrentInferenceHooks struct {
	ExchangeRefutedAnnotations func(engineTaskID string, refs []RefutedAnnotation)
	ApplyRefutedSharedAnnotations func(engineTaskID string)
	ShareRefutedAnnotation func(engineTaskID string, ref RefutedAnnotation)
	TaskID func() string
}

func (h ConcurrentInferenceHooks) exchangeRefutedAnnotations(taskID string, refs []RefutedAnnotation) {
	if h.ExchangeRefutedAnnotations != nil {
		h.ExchangeRefutedAnnotations(taskID, refs)
	}
}

func (h ConcurrentInferenceHooks) applyRefutedSharedAnnotations(taskID string) {
	if h.ApplyRefutedSharedAnnotations != nil {
		h.ApplyRefutedSharedAnnotations(taskID)
	}
}

func (h ConcurrentInferenceHooks) shareRefutedAnnotation(taskID string, ref RefutedAnnotation) {
	if h.ShareRefutedAnnotation != nil {
		h.ShareRefutedAnnotation(taskID, ref)
	}
}

func (h ConcurrentInferenceHooks) taskID() string {
	if h.TaskID != nil {
		return h.TaskID()
	}
	return ""
}
