package wifi

func platformProbes(_ string) []probe {
	return []probe{
		{command: "netsh", args: []string{"wlan", "show", "interfaces"}, parse: parseNetsh},
	}
}
