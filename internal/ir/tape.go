package ir

// TapeSize is the fixed tape length both back-ends target (spec.md §3,
// §6: "tape length: fixed, ≥30000"). Kept here, rather than duplicated in
// the interpreter and transpiler, so round-trip equivalence (spec.md §8)
// never drifts out of sync between the two back-ends.
const TapeSize = 30000
