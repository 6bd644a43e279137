// Package sampler implements the polling loop that detects the target
// wireless network and records connection times.
//
// Each tick asks a [wifi.Detector] for the current SSID. When it equals the
// configured target (case-sensitive), the current local date and HH:MM are
// passed to a [Recorder]. Detector and recorder failures are logged and
// counted; they never stop the loop, and there is no retry or backoff: the
// next tick is the retry.
//
// Ticks are scheduled with a quartz.Clock so tests can drive them with a
// mock clock.
package sampler
