package engine

import (
	"github.com/dimchain/dimchain/pkg/settings"
)

// chainNudge is the uniform lateral translation (≈10 mm in feet) applied
// to every composed chain of a view, keeping annotations clear of
// witness-line geometry. Cosmetic only; it is not part of grouping.
const chainNudge = 0.033

// Stats summarizes one view pass for logging and aggregation.
type Stats struct {
	Candidates int `json:"candidates" bson:"candidates"`
	Skipped    int `json:"skipped" bson:"skipped"`
	Buckets    int `json:"buckets" bson:"buckets"`
	Groups     int `json:"groups" bson:"groups"`
	Chains     int `json:"chains" bson:"chains"`
}

// Run executes one view's full pass: collect candidates, group by
// direction, merge collinear, select representatives, compose chains.
//
// Buckets without a selected dimensionable item are skipped entirely, and
// groups that end up with fewer than two representatives are silently
// abandoned. Zero chains is a normal result. Items are constructed fresh
// for the pass and discarded with it; nothing is cached across views.
func Run(view ViewContext, p ElementProvider, cfg settings.Settings) ([]Chain, Stats) {
	var stats Stats

	items, skipped := BuildCandidates(view, p, cfg)
	stats.Candidates = len(items)
	stats.Skipped = skipped
	if len(items) == 0 {
		return nil, stats
	}

	buckets := GroupParallel(items, cfg.ParallelTolerance)
	stats.Buckets = len(buckets)

	var chains []Chain
	var laterals []int // parallel slice: chain index -> owning bucket

	for bi, b := range buckets {
		if !b.Eligible() {
			continue
		}
		groups := MergeCollinear(b, cfg)
		stats.Groups += len(groups)

		for _, g := range groups {
			reps := SelectReferences(g, cfg)
			chain, err := ComposeChain(view, b.Direction, reps, ComposeOptions{Offset: cfg.DefaultOffset})
			if err != nil {
				// Too few references or a degenerate direction: the
				// candidate chain is abandoned, the pass continues.
				continue
			}
			chains = append(chains, chain)
			laterals = append(laterals, bi)
		}
	}
	stats.Chains = len(chains)

	if cfg.NudgeChains {
		nudgeChains(view, buckets, chains, laterals)
	}
	return chains, stats
}

// nudgeChains shifts every chain of the view by a fixed distance along
// its bucket's perpendicular axis.
func nudgeChains(view ViewContext, buckets []Bucket, chains []Chain, laterals []int) {
	for i := range chains {
		perp2 := perpAxis(buckets[laterals[i]].Direction)
		shift := view.UnprojectDirection(perp2).Scale(chainNudge)
		chains[i].Start = chains[i].Start.Add(shift)
		chains[i].End = chains[i].End.Add(shift)
	}
}
