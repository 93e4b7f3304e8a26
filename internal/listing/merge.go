package listing

import "github.com/sells-group/listings-api/internal/model"

// Dedupe collapses records that share a non-empty canonical address key,
// preserving first-seen order. The first record seen for a key is kept; a
// later duplicate only contributes its raw payload, so internal identity
// and financial fields are never overwritten by an external duplicate.
// Records with an empty key carry no identity and always pass through as
// their own row.
//
// Output length never exceeds input length, every kept record holds at most
// one raw entry per source, and no payload is discarded. Running Dedupe on
// its own output is a no-op.
func Dedupe(records []model.UnifiedPropertyRecord) []model.UnifiedPropertyRecord {
	out := make([]model.UnifiedPropertyRecord, 0, len(records))
	kept := make(map[string]int, len(records))

	for _, rec := range records {
		key := rec.CanonicalKey()
		if key == "" {
			out = append(out, rec)
			continue
		}

		idx, seen := kept[key]
		if !seen {
			kept[key] = len(out)
			out = append(out, rec)
			continue
		}

		attachRaw(&out[idx], rec)
	}

	return out
}

// attachRaw merges the duplicate's raw payloads into the kept record,
// filling only source slots the kept record does not have yet.
func attachRaw(keptRec *model.UnifiedPropertyRecord, dup model.UnifiedPropertyRecord) {
	if len(dup.Raw) == 0 {
		return
	}
	if keptRec.Raw == nil {
		keptRec.Raw = make(map[string]any, len(dup.Raw))
	}
	for src, payload := range dup.Raw {
		if _, ok := keptRec.Raw[src]; ok {
			continue
		}
		keptRec.Raw[src] = payload
	}
}
