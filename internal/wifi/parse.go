package wifi

import (
	"bufio"
	"bytes"
	"strings"
)

// parseNetworksetup parses `networksetup -getairportnetwork <iface>`:
//
//	Current Wi-Fi Network: HomeNet
//	You are not associated with an AirPort network.
func parseNetworksetup(out []byte) (string, error) {
	line := strings.TrimSpace(string(out))

	_, ssid, found := strings.Cut(line, ": ")
	if !found || !strings.HasPrefix(line, "Current Wi-Fi Network") {
		return "", ErrNotConnected
	}

	ssid = strings.TrimSpace(ssid)
	if ssid == "" {
		return "", ErrNotConnected
	}

	return ssid, nil
}

// parseIpconfigSummary parses the "SSID : name" line of
// `ipconfig getsummary <iface>` on macOS.
func parseIpconfigSummary(out []byte) (string, error) {
	return findKeyValue(out, "SSID")
}

// parseNmcli parses `nmcli -t -f active,ssid dev wifi`. Terse mode escapes
// ':' and '\' in values with a backslash.
func parseNmcli(out []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))

	for scanner.Scan() {
		ssid, ok := strings.CutPrefix(scanner.Text(), "yes:")
		if !ok {
			continue
		}

		ssid = unescapeNmcli(ssid)
		if ssid != "" {
			return ssid, nil
		}
	}

	return "", ErrNotConnected
}

func unescapeNmcli(s string) string {
	var b strings.Builder

	escaped := false

	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}

		escaped = false

		b.WriteRune(r)
	}

	return b.String()
}

// parseIwgetid parses `iwgetid -r`, which prints the bare SSID.
func parseIwgetid(out []byte) (string, error) {
	ssid := strings.TrimSpace(string(out))
	if ssid == "" {
		return "", ErrNotConnected
	}

	return ssid, nil
}

// parseNetsh parses `netsh wlan show interfaces`.
func parseNetsh(out []byte) (string, error) {
	if state, err := findKeyValue(out, "State"); err == nil && strings.EqualFold(state, "disconnected") {
		return "", ErrNotConnected
	}

	return findKeyValue(out, "SSID")
}

// findKeyValue returns the value of the first "key : value" line whose key
// matches exactly, so "SSID" does not match "BSSID".
func findKeyValue(out []byte, key string) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))

	for scanner.Scan() {
		k, v, found := strings.Cut(scanner.Text(), ":")
		if !found || strings.TrimSpace(k) != key {
			continue
		}

		if v = strings.TrimSpace(v); v != "" {
			return v, nil
		}
	}

	return "", ErrNotConnected
}
