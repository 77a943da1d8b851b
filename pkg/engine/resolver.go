package engine

import (
	"regexp"
	"strings"
)

// normalizeRegex strips everything outside lowercase letters, digits and
// spaces. Queries and candidate names pass through the same normalization
// so "B-101!" and "b101" compare equal.
var normalizeRegex = regexp.MustCompile(`[^a-z0-9 ]+`)

func normalizeQuery(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSpace(normalizeRegex.ReplaceAllString(s, ""))
}

// queryWords splits a normalized string into its word set, dropping
// single-character words which match too promiscuously.
func queryWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(s) {
		if len(w) > 1 {
			words[w] = struct{}{}
		}
	}
	return words
}

// Resolver maps a free-text destination utterance to a single graph node.
// It is a heuristic matcher, not a learned model: exact id and name/alias
// matches short-circuit, then containment and word-overlap scoring picks
// the best remaining candidate above a confidence cutoff.
type Resolver struct {
	graph  *GraphStore
	tuning Tuning
}

// NewResolver builds a resolver over an immutable graph.
func NewResolver(g *GraphStore, tuning Tuning) *Resolver {
	return &Resolver{graph: g, tuning: tuning}
}

// Resolve returns the node best matching the query, or false when nothing
// matches confidently enough. Misses are a normal outcome (the assistant
// apologizes and keeps listening), never an error.
func (r *Resolver) Resolve(query string) (*Node, bool) {
	q := normalizeQuery(query)
	if q == "" {
		return nil, false
	}

	// Room-code lookup: "b101" resolves straight to node id B101.
	if n, ok := r.graph.Get(strings.ToUpper(q)); ok {
		return n, true
	}

	qWords := queryWords(q)

	var best *Node
	var bestScore float64

	// Ascending-id scan keeps tie-breaking deterministic: the first maximum
	// wins, so equal scores resolve to the lowest node id.
	var exact *Node
	r.graph.Scan(func(n *Node) bool {
		candidates := append([]string{n.Name}, n.Aliases...)
		for _, cand := range candidates {
			c := normalizeQuery(cand)

			if c == q {
				exact = n
				return false
			}

			score := r.scoreCandidate(q, qWords, c)
			if score > bestScore {
				bestScore = score
				best = n
			}
		}
		return true
	})
	if exact != nil {
		return exact, true
	}

	if bestScore > r.tuning.ConfidenceThreshold {
		return best, true
	}
	return nil, false
}

// scoreCandidate rates one normalized candidate string against the query.
// Containment in either direction scores proportionally to the overlap
// fraction; shared words add a fixed weight each.
func (r *Resolver) scoreCandidate(q string, qWords map[string]struct{}, c string) float64 {
	if c == "" {
		return 0
	}

	var score float64
	if strings.Contains(c, q) {
		score += r.tuning.SubstringWeight * float64(len(q)) / float64(len(c))
	}
	if strings.Contains(q, c) {
		score += r.tuning.SubstringWeight * float64(len(c)) / float64(len(q))
	}

	for w := range queryWords(c) {
		if _, ok := qWords[w]; ok {
			score += r.tuning.WordMatchWeight
		}
	}
	return score
}
