package domain

// BridgeState is the lifecycle of the bridge process. There is no way back
// from Serving: the process serves until it terminates.
type BridgeState int32

const (
	Unregistered BridgeState = iota
	Serving
)

func (s BridgeState) String() string {
	switch s {
	case Unregistered:
		return "UNREGISTERED"
	case Serving:
		return "SERVING"
	default:
		return "UNKNOWN"
	}
}
