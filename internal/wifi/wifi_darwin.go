package wifi

// Recent macOS releases redact the networksetup answer, so ipconfig is
// asked as a fallback.
func platformProbes(iface string) []probe {
	if iface == "" {
		iface = "en0"
	}

	return []probe{
		{command: "networksetup", args: []string{"-getairportnetwork", iface}, parse: parseNetworksetup},
		{command: "ipconfig", args: []string{"getsummary", iface}, parse: parseIpconfigSummary},
	}
}
