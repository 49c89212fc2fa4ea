package transform

import (
	perr "statsdash/internal/platform/errors"
)

// New constructs the transformer for kind. Unknown kinds are a fatal
// construction error with no default or fallback transformer
func New(kind Kind, cfg Config) (Transformer, error) {
	switch kind {
	case KindRecordDelta:
		return NewRecordDelta(cfg), nil
	case KindRecordSnapshot:
		return NewRecordSnapshot(cfg), nil
	case KindUsageDelta:
		return NewUsageDelta(cfg), nil
	case KindUsageSnapshot:
		return NewUsageSnapshot(cfg), nil
	}
	return nil, perr.Newf(perr.ErrorCodeUnknownTransformer, "unknown transformer kind %q", string(kind))
}
