package payload

// Option configures a Validator.
type Option func(*options)

type options struct {
	strict                bool
	liveActivityRelevance bool
}

// WithStrict reports every warning as an error. Without it, contract
// problems APNs tolerates (unknown alert or sound keys, loc-args without a
// loc-key, a silent push that also carries alert, badge or sound, a negative
// badge, duplicate keys) do not make the payload invalid.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithLiveActivityRelevance accepts any finite relevance-score when the
// payload carries content-state, as Live Activity updates may use values
// such as 25, 50 or 100 to order activities.
func WithLiveActivityRelevance() Option {
	return func(o *options) {
		o.liveActivityRelevance = true
	}
}
