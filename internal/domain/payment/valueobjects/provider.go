package valueobjects

// Provider identifies which payment strategy produced a session.
type Provider string

const (
	// ProviderMock is the sandbox strategy; no PSP is contacted.
	ProviderMock Provider = "mock"
	// ProviderCoinsbuy is the live PSP.
	ProviderCoinsbuy Provider = "coinsbuy"
)

func (p Provider) IsLive() bool {
	return p == ProviderCoinsbuy
}

func (p Provider) String() string {
	return string(p)
}
