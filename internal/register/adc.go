package register

// FakeConverter is a scripted Converter for tests.
type FakeConverter struct {
	// Raw is the code Result returns.
	Raw uint16

	// BusyCycles is how many Busy() calls report true per conversion.
	BusyCycles int

	// Started counts Start calls.
	Started int

	busyLeft int
}

// Start begins a fake conversion.
func (f *FakeConverter) Start() {
	f.Started++
	f.busyLeft = f.BusyCycles
}

// Busy reports true for the configured number of cycles.
func (f *FakeConverter) Busy() bool {
	if f.busyLeft > 0 {
		f.busyLeft--
		return true
	}
	return false
}

// Result returns the scripted raw code.
func (f *FakeConverter) Result() uint16 {
	return f.Raw
}

// NullConverter is used when the node has no analog measurement path. Its
// zero raw code makes the voltage register report the sentinel.
type NullConverter struct{}

func (NullConverter) Start()         {}
func (NullConverter) Busy() bool     { return false }
func (NullConverter) Result() uint16 { return 0 }
