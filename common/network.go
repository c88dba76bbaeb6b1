package common

type Network string

const (
	NetworkMainnet Network = "mainnet"
	NetworkDevnet  Network = "devnet"
)

var supportedNetworks = map[Network]struct{}{
	NetworkMainnet: {},
	NetworkDevnet:  {},
}

var defaultRPCEndpoints = map[Network]string{
	NetworkMainnet: "https://api.mainnet-beta.solana.com",
	NetworkDevnet:  "https://api.devnet.solana.com",
}

func (n Network) IsSupported() bool {
	_, ok := supportedNetworks[n]
	return ok
}

// DefaultRPCEndpoint returns the public RPC endpoint for the network.
// Production deployments should configure a dedicated endpoint instead.
func (n Network) DefaultRPCEndpoint() string {
	return defaultRPCEndpoints[n]
}

func (n Network) String() string {
	return string(n)
}
