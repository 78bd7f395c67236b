// Package topper implements the Cross-Bucket Topper (spec §4.6): the
// global second pass that moves whole assignments from low-priority
// donor trucks into under-filled higher-priority target trucks sharing
// the same group key.
package topper

import (
	"sort"
	"time"

	"loadplanner/internal/domain"
)

// Config tunes the topper's feasibility check.
type Config struct {
	SoftFullRatio float64 // mirrors packing.Config.SoftFullRatio
	Epsilon       float64 // floating tolerance on MaxWeight (spec default 1e-4)
}

func DefaultConfig() Config {
	return Config{SoftFullRatio: 0.98, Epsilon: 1e-4}
}

type bucketPass struct {
	targets []domain.PriorityBucket
	donors  []domain.PriorityBucket
}

// passes is the ordered pair of target/donor bucket sets (spec §4.6
// table): Late absorbs from NearDue+WithinWindow first, then NearDue
// absorbs from WithinWindow.
var passes = []bucketPass{
	{targets: []domain.PriorityBucket{domain.Late}, donors: []domain.PriorityBucket{domain.NearDue, domain.WithinWindow}},
	{targets: []domain.PriorityBucket{domain.NearDue}, donors: []domain.PriorityBucket{domain.WithinWindow}},
}

// Apply runs both topper passes over every finalized truck and returns
// the surviving trucks (donors emptied by a move are deleted). Running
// Apply twice on its own output is a no-op: a second pass finds no
// target below minWeight-and-not-soft-full with a same-group donor left
// to give, so the move loop terminates immediately (spec §8 idempotence law).
func Apply(trucks []domain.Truck, cfg Config, today time.Time) []domain.Truck {
	byNumber := make(map[int]*domain.Truck, len(trucks))
	order := make([]int, 0, len(trucks))
	for i := range trucks {
		t := trucks[i]
		byNumber[t.TruckNumber] = &t
		order = append(order, t.TruckNumber)
	}

	for _, pass := range passes {
		runPass(byNumber, pass, cfg, today)
	}

	sort.Ints(order)
	out := make([]domain.Truck, 0, len(byNumber))
	for _, n := range order {
		if t, ok := byNumber[n]; ok {
			out = append(out, *t)
		}
	}
	return out
}

func inBucketSet(b domain.PriorityBucket, set []domain.PriorityBucket) bool {
	for _, s := range set {
		if b == s {
			return true
		}
	}
	return false
}

func runPass(byNumber map[int]*domain.Truck, pass bucketPass, cfg Config, today time.Time) {
	groups := make(map[[5]string][]int)
	for n, t := range byNumber {
		groups[t.GroupKey.Comparable()] = append(groups[t.GroupKey.Comparable()], n)
	}

	for _, numbers := range groups {
		var targets, donors []int
		for _, n := range numbers {
			t := byNumber[n]
			if inBucketSet(t.Bucket, pass.targets) {
				targets = append(targets, n)
			} else if inBucketSet(t.Bucket, pass.donors) {
				donors = append(donors, n)
			}
		}
		sort.Ints(targets)
		sort.Ints(donors)

		for _, tn := range targets {
			target := byNumber[tn]
			if target == nil {
				continue
			}
			for _, dn := range donors {
				donor := byNumber[dn]
				if donor == nil {
					continue
				}
				moveFromDonor(byNumber, target, donor, cfg, today)
				if donor.TotalWeight <= 0 || len(donor.Assignments) == 0 {
					delete(byNumber, dn)
				}
				if targetSatisfied(target, cfg) {
					break
				}
			}
		}
	}
}

// moveFromDonor drains donor's assignments (sorted SO, Line) into
// target one at a time, atomically, until the target reaches minWeight
// or soft-full, or the donor has nothing left to give.
func moveFromDonor(byNumber map[int]*domain.Truck, target, donor *domain.Truck, cfg Config, today time.Time) {
	for {
		if targetSatisfied(target, cfg) {
			return
		}
		sort.SliceStable(donor.Assignments, func(i, j int) bool {
			if donor.Assignments[i].SO != donor.Assignments[j].SO {
				return donor.Assignments[i].SO < donor.Assignments[j].SO
			}
			return donor.Assignments[i].Line < donor.Assignments[j].Line
		})

		idx := -1
		for i, a := range donor.Assignments {
			if feasible(target, a, cfg, today) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}

		moved := donor.Assignments[idx]
		donor.Assignments = append(donor.Assignments[:idx], donor.Assignments[idx+1:]...)
		moved.TruckNumber = target.TruckNumber
		target.Assignments = append(target.Assignments, moved)

		target.Recompute()
		donor.Recompute()
		byNumber[target.TruckNumber] = target
		byNumber[donor.TruckNumber] = donor
	}
}

func feasible(target *domain.Truck, a domain.Assignment, cfg Config, today time.Time) bool {
	if target.TotalWeight+a.TotalWeight > target.MaxWeight*(1+cfg.Epsilon) {
		return false
	}
	if target.Bucket == domain.Late {
		if a.EarliestDue == nil || a.EarliestDue.After(today) {
			return false
		}
	}
	return true
}

func targetSatisfied(target *domain.Truck, cfg Config) bool {
	return target.TotalWeight >= target.MinWeight || target.IsSoftFull(cfg.SoftFullRatio)
}
