package domain

// ProbeResult is the outcome of requesting one bang destination.
type ProbeResult struct {
	Keyword   string `json:"keyword"`
	URL       string `json:"url"`
	Status    int    `json:"status,omitempty"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// OK reports whether the destination answered without a client or server error.
func (p ProbeResult) OK() bool {
	return p.Error == "" && p.Status > 0 && p.Status < 400
}
