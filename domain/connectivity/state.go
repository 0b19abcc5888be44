package connectivity

// Transport is the connectivity medium reported by the monitor.
type Transport string

const (
	TransportWifi     Transport = "wifi"
	TransportCellular Transport = "cellular"
	TransportNone     Transport = "none"
	TransportUnknown  Transport = "unknown"
)

// State is the current network reachability. It is never persisted; monitors
// push it to subscribers on change.
type State struct {
	Reachable bool      `json:"reachable"`
	Transport Transport `json:"transport"`
}

// Offline is the state reported when no network is available.
func Offline() State {
	return State{Reachable: false, Transport: TransportNone}
}

// Wifi is a reachable wifi state.
func Wifi() State {
	return State{Reachable: true, Transport: TransportWifi}
}

// Cellular is a reachable cellular state.
func Cellular() State {
	return State{Reachable: true, Transport: TransportCellular}
}

// ParseTransport maps a string onto a known transport, defaulting to unknown.
func ParseTransport(s string) Transport {
	switch Transport(s) {
	case TransportWifi, TransportCellular, TransportNone:
		return Transport(s)
	default:
		return TransportUnknown
	}
}
