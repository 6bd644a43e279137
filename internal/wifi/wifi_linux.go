package wifi

func platformProbes(_ string) []probe {
	return []probe{
		{command: "nmcli", args: []string{"-t", "-f", "active,ssid", "dev", "wifi"}, parse: parseNmcli},
		{command: "iwgetid", args: []string{"-r"}, parse: parseIwgetid},
	}
}
