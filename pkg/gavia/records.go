// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

// Notification schema catalog. Field lists, requiredness and ranges follow
// the RAVEn(TM) XML API documentation for each notification type.

// WarningSchema covers the Warning notification sent when a command has not
// been understood.
var WarningSchema = registerRecord(&Schema{
	Tag: "Warning",
	Fields: []Field{
		String("Text", Required()),
	},
})

// ConnectionStatusSchema covers start-up and join/re-join diagnostics.
var ConnectionStatusSchema = registerRecord(&Schema{
	Tag: "ConnectionStatus",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Enumeration("Status", StatusVocab, Required()),
		String("Description"),
		Hex("StatusCode", Range(0, 0xff)),
		Hex("ExtPanId"),
		Integer("Channel", Range(11, 26)),
		Hex("ShortAddr", Range(0, 0xffff)),
		Hex("LinkStrength", Required(), Range(0, 0x64)),
	},
})

// DeviceInfoSchema covers basic adapter identification.
var DeviceInfoSchema = registerRecord(&Schema{
	Tag: "DeviceInfo",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("InstallCode", Required()),
		Hex("LinkKey", Required()),
		String("FWVersion", Required()),
		String("HWVersion", Required()),
		String("ImageType", Required()),
		String("Manufacturer", Required()),
		String("ModelId", Required()),
		String("DateCode", Required()),
	},
})

// ScheduleInfoSchema covers scheduler state for one event type.
var ScheduleInfoSchema = registerRecord(&Schema{
	Tag: "ScheduleInfo",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Enumeration("Event", EventVocab),
		Hex("Frequency", Required(), Range(0, 0xfffffffe)),
		Boolean("Enabled", Required()),
	},
})

// MeterListSchema covers the list of meters the adapter is connected to.
// MeterMacId repeats once per known meter.
var MeterListSchema = registerRecord(&Schema{
	Tag: "MeterList",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Sequence()),
	},
})

// MeterInfoSchema covers per-meter information.
var MeterInfoSchema = registerRecord(&Schema{
	Tag: "MeterInfo",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Enumeration("MeterType", MeterTypeVocab, Required()),
		String("NickName", Required()),
		String("Account"),
		String("Auth"),
		String("Host"),
		Boolean("Enabled"),
	},
})

// NetworkInfoSchema covers the device's network status.
var NetworkInfoSchema = registerRecord(&Schema{
	Tag: "NetworkInfo",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("CoordMacId", Required()),
		Enumeration("Status", StatusVocab, Required()),
		String("Description"),
		Hex("StatusCode", Required(), Range(0, 0xff)),
		Hex("ExtPanId", Required()),
		Integer("Channel", Required(), Range(11, 26)),
		Hex("ShortAddr", Required(), Range(0, 0xffff)),
		Hex("LinkStrength", Required(), Range(0, 0x64)),
	},
})

// TimeClusterSchema covers the meter's current time in UTC and local form.
var TimeClusterSchema = registerRecord(&Schema{
	Tag: "TimeCluster",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("UTCTime", Required()),
		Date("LocalTime", Required()),
	},
})

// MessageClusterSchema covers the current text message. A sentinel Id marks
// an intentionally empty message queue; the whole record is skipped.
var MessageClusterSchema = registerRecord(&Schema{
	Tag: "MessageCluster",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("TimeStamp", Required()),
		Hex("Id", Required(), Range(0, 0xffffffff), Sentinel("0xffffffff"), SkipOnMissing()),
		String("Text", Required()),
		Boolean("ConfirmationRequired", Required()),
		Boolean("Confirmed", Required()),
		Enumeration("Queue", QueueVocab, Required()),
	},
})

// PriceClusterSchema covers the price in effect on the meter. Either the
// TierLabel or the RateLabel, or neither, is present.
var PriceClusterSchema = registerRecord(&Schema{
	Tag: "PriceCluster",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("TimeStamp", Required()),
		Hex("Price", Required(), Range(0, 0xffffffff)),
		Currency("Currency", Required()),
		Hex("TrailingDigits", Required()),
		Hex("Tier", Required(), Range(0, 0xff)),
		String("TierLabel"),
		String("RateLabel"),
	},
})

// InstantaneousDemandSchema covers the current consumption rate. Demand is
// rescaled by Multiplier/Divisor after decode.
var InstantaneousDemandSchema = registerRecord(&Schema{
	Tag: "InstantaneousDemand",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("TimeStamp", Required()),
		Hex("Demand", Required(), Range(0, 0xffffff)),
		Hex("Multiplier", Required(), Range(0, 0xffffffff)),
		Hex("Divisor", Required(), Range(0, 0xffffffff)),
		Hex("DigitsRight", Required(), Range(0, 0xff)),
		Hex("DigitsLeft", Required(), Range(0, 0xff)),
		Boolean("SuppressLeadingZero", Required()),
	},
	Scaled: []string{"Demand"},
})

// CurrentSummationDeliveredSchema covers total consumption to date.
var CurrentSummationDeliveredSchema = registerRecord(&Schema{
	Tag: "CurrentSummationDelivered",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("TimeStamp", Required()),
		Hex("SummationDelivered", Required(), Range(0, 0xffffffff)),
		Hex("SummationReceived", Required(), Range(0, 0xffffffff)),
		Hex("Multiplier", Required(), Range(0, 0xffffffff)),
		Hex("Divisor", Required(), Range(0, 0xffffffff)),
		Hex("DigitsRight", Required(), Range(0, 0xff)),
		Hex("DigitsLeft", Required(), Range(0, 0xff)),
		Boolean("SuppressLeadingZero", Required()),
	},
	Scaled: []string{"SummationDelivered", "SummationReceived"},
})

// CurrentPeriodUsageSchema covers accumulated usage for the current period.
var CurrentPeriodUsageSchema = registerRecord(&Schema{
	Tag: "CurrentPeriodUsage",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("TimeStamp", Required()),
		Hex("CurrentUsage", Required(), Range(0, 0xffffffff)),
		Hex("Multiplier", Required(), Range(0, 0xffffffff)),
		Hex("Divisor", Required(), Range(0, 0xffffffff)),
		Hex("DigitsRight", Required(), Range(0, 0xff)),
		Hex("DigitsLeft", Required(), Range(0, 0xff)),
		Boolean("SuppressLeadingZero", Required()),
		Date("StartDate", Required()),
	},
	Scaled: []string{"CurrentUsage"},
})

// LastPeriodUsageSchema covers the previous accumulation period.
var LastPeriodUsageSchema = registerRecord(&Schema{
	Tag: "LastPeriodUsage",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Hex("LastUsage", Required(), Range(0, 0xffffffff)),
		Hex("Multiplier", Required(), Range(0, 0xffffffff)),
		Hex("Divisor", Required(), Range(0, 0xffffffff)),
		Hex("DigitsRight", Required(), Range(0, 0xff)),
		Hex("DigitsLeft", Required(), Range(0, 0xff)),
		Boolean("SuppressLeadingZero", Required()),
		Date("StartDate", Required()),
		Date("EndDate", Required()),
	},
	Scaled: []string{"LastUsage"},
})

// ProfileDataSchema covers interval data returned for get_profile_data.
// IntervalData repeats once per period, most recent first; the all-ones
// sentinel marks periods with no reading and is stripped from the sequence.
var ProfileDataSchema = registerRecord(&Schema{
	Tag: "ProfileData",
	Fields: []Field{
		Hex("DeviceMacId", Required()),
		Hex("MeterMacId", Required()),
		Date("EndTime", Required()),
		Hex("Status", Required(), Range(0, 0x05)),
		IntervalPeriod("ProfileIntervalPeriod", Required()),
		Hex("NumberOfPeriodsDelivered", Required(), Range(0, 0xff)),
		Hex("IntervalData", Required(), Sequence(), Range(0, 0xffffff), Sentinel("0xffffff")),
	},
})
