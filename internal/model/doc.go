// Package model defines the data structures used throughout wifilog.
//
// # DailyRecord
//
// The [DailyRecord] struct is the single persisted entity, one per calendar
// date:
//
//	type DailyRecord struct {
//	    Date     string // "2006-01-02", primary key
//	    Earliest string // "15:04", first matching sample of the day
//	    Latest   string // "15:04", last matching sample of the day
//	}
//
// Dates and times are fixed-width strings so that lexicographic order equals
// chronological order. Use [ValidateDate] and [ValidateTimeOfDay] before
// comparing values that did not come from [FormatDate] or [FormatTimeOfDay].
//
// # Config
//
// The [Config] struct holds application configuration, grouped in the same
// sections as the INI file:
//
//	[sampler]  target_ssid, interval, timezone
//	[detector] interface, timeout, static_ssid
//	[storage]  backend, path
//	[server]   listen
//	[log]      level, format
package model
