package mapping

// newIterScope builds the evaluation context for one iter item: the
// parent source's fields overlaid with the item's own fields, plus
// "item" and "parent" bindings. The overlay is shallow, so an item
// object replaces a same-named parent object wholesale rather than
// merging into it. Scalar items are bound under "value" instead of
// being spread. The scope lives for a single template evaluation and
// is discarded afterwards.
func newIterScope(parent any, item any) map[string]any {
	scope := map[string]any{}

	if parentMap, ok := parent.(map[string]any); ok {
		for key, value := range parentMap {
			scope[key] = value
		}
	}

	if itemMap, ok := item.(map[string]any); ok {
		for key, value := range itemMap {
			scope[key] = value
		}
	} else {
		scope["value"] = item
	}

	scope["item"] = item
	scope["parent"] = parent
	return scope
}

// MergeScope overlays resolved values on top of a raw record, used for
// export file-name templating where tokens may refer to either. The
// overlay is shallow: an overlay object replaces a record object under
// the same key.
func MergeScope(record any, overlay map[string]any) map[string]any {
	scope := map[string]any{}
	if recordMap, ok := record.(map[string]any); ok {
		for key, value := range recordMap {
			scope[key] = value
		}
	}
	for key, value := range overlay {
		scope[key] = value
	}
	return scope
}
