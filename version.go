package gc

import "github.com/Masterminds/semver/v3"

// EngineVersion is the collector's own semantic version: the
// threshold/growth-factor behavior demonstrated in spec.md §8 scenario 2
// (collects after reaching threshold, new threshold = live + floor(live*growth)+1)
// is observable to a mutator, so a host embedding this package can pin
// the exact reclaim-timing contract it was built against rather than
// silently riding along with whatever this module's next release changes.
const EngineVersion = "0.1.0"

var engineSemver = semver.MustParse(EngineVersion)

// CompatibleWith reports whether the given semver constraint (e.g.
// "^0.1", ">=0.1.0, <0.2.0") is satisfied by this build's EngineVersion.
// A host that depends on scenario 2's exact reclaim-timing behavior
// should call this at startup and refuse to run rather than discover a
// behavior change from a flaky collection-timing assumption later.
func (c *Collector) CompatibleWith(constraint string) (bool, error) {
	cst, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, err
	}
	return cst.Check(engineSemver), nil
}

// Version returns the collector's engine version string.
func (c *Collector) Version() string {
	return EngineVersion
}
