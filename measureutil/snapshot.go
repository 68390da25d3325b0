package measureutil

import "latnetsearch/measure"

// SnapshotAndReset returns the global measurement map and clears it.
func SnapshotAndReset() map[string]uint64 {
	return measure.Global.SnapshotAndReset()
}

// Dump prints and clears the global measurement map.
func Dump() {
	measure.Global.Dump()
}
