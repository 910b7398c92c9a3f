package gpio

import "errors"

// FakeSampler is a test double that returns scripted snapshots.
type FakeSampler struct {
	// Snapshots contains scripted passes to return.
	// Each call to Snapshot() consumes the next one.
	Snapshots []Snapshot

	// index tracks current position in Snapshots
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Snapshot()
	ReadError error
}

// NewFakeSampler creates a FakeSampler with the given snapshots.
func NewFakeSampler(snapshots []Snapshot) *FakeSampler {
	return &FakeSampler{Snapshots: snapshots}
}

// Snapshot returns the next scripted pass.
// If snapshots are exhausted, the last one is returned repeatedly.
func (f *FakeSampler) Snapshot() (Snapshot, error) {
	if f.ReadError != nil {
		return Snapshot{}, f.ReadError
	}

	if len(f.Snapshots) == 0 {
		return Snapshot{}, errors.New("no snapshots configured")
	}

	i := f.index
	if i >= len(f.Snapshots) {
		i = len(f.Snapshots) - 1
	} else {
		f.index++
	}

	return f.Snapshots[i], nil
}

// Push appends a snapshot to the script. Useful for driving the scheduler
// loop one wake at a time.
func (f *FakeSampler) Push(snap Snapshot) {
	f.Snapshots = append(f.Snapshots, snap)
}

// Close marks the sampler as closed.
func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the sampler to the beginning of the script.
func (f *FakeSampler) Reset() {
	f.index = 0
	f.Closed = false
}

// Levels builds a snapshot from two bitmaps, bit i = level of line i in its
// group. Keeps test scripts compact.
func Levels(counterBits, binaryBits byte) Snapshot {
	var snap Snapshot
	for i := 0; i < NumBinary; i++ {
		snap.Binary[i] = bitLevel(binaryBits, i)
	}
	for i := 0; i < NumCounter; i++ {
		snap.Counter[i] = bitLevel(counterBits, i)
	}
	return snap
}

func bitLevel(bits byte, i int) Level {
	if bits&(1<<i) != 0 {
		return LevelHigh
	}
	return LevelLow
}
