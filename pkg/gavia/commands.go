// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

// Command argument catalog. Each schema's Tag is the command name carried in
// the Name element; Fields are the arguments in wire order. Commands with no
// entry beyond the name take no arguments.

var (
	// Adapter lifecycle.
	InitializeCommand   = registerCommand(&Schema{Tag: "initialize"})
	RestartCommand      = registerCommand(&Schema{Tag: "restart"})
	FactoryResetCommand = registerCommand(&Schema{Tag: "factory_reset"})

	// Status and identification.
	GetConnectionStatusCommand = registerCommand(&Schema{Tag: "get_connection_status"})
	GetDeviceInfoCommand       = registerCommand(&Schema{Tag: "get_device_info"})
	GetNetworkInfoCommand      = registerCommand(&Schema{Tag: "get_network_info"})

	// Scheduler.
	GetScheduleCommand = registerCommand(&Schema{
		Tag: "get_schedule",
		Fields: []Field{
			Hex("MeterMacId"),
			Enumeration("Event", EventVocab),
		},
	})
	SetScheduleCommand = registerCommand(&Schema{
		Tag: "set_schedule",
		Fields: []Field{
			Hex("MeterMacId"),
			Enumeration("Event", EventVocab, Required()),
			Hex("Frequency", Required(), Range(0, 0xfffffffe)),
			Boolean("Enabled", Required()),
		},
	})
	SetScheduleDefaultCommand = registerCommand(&Schema{
		Tag: "set_schedule_default",
		Fields: []Field{
			Hex("MeterMacId"),
			Enumeration("Event", EventVocab),
		},
	})

	// Meters.
	GetMeterListCommand = registerCommand(&Schema{Tag: "get_meter_list"})
	GetMeterInfoCommand = registerCommand(&Schema{
		Tag:    "get_meter_info",
		Fields: []Field{Hex("MeterMacId")},
	})
	SetMeterInfoCommand = registerCommand(&Schema{
		Tag: "set_meter_info",
		Fields: []Field{
			Hex("MeterMacId"),
			String("NickName"),
			String("Account"),
			String("Auth"),
			String("Host"),
			Boolean("Enabled"),
		},
	})

	// Time and messaging.
	GetTimeCommand = registerCommand(&Schema{
		Tag: "get_time",
		Fields: []Field{
			Hex("MeterMacId"),
			Boolean("Refresh"),
		},
	})
	GetMessageCommand = registerCommand(&Schema{
		Tag: "get_message",
		Fields: []Field{
			Hex("MeterMacId"),
			Boolean("Refresh"),
		},
	})
	ConfirmMessageCommand = registerCommand(&Schema{
		Tag: "confirm_message",
		Fields: []Field{
			Hex("MeterMacId"),
			Hex("Id", Required(), Range(0, 0xffffffff)),
		},
	})

	// Pricing.
	GetCurrentPriceCommand = registerCommand(&Schema{
		Tag: "get_current_price",
		Fields: []Field{
			Hex("MeterMacId"),
			Boolean("Refresh"),
		},
	})
	SetCurrentPriceCommand = registerCommand(&Schema{
		Tag: "set_current_price",
		Fields: []Field{
			Hex("MeterMacId"),
			Hex("Price", Required(), Range(0, 0xffffffff)),
			Hex("TrailingDigits", Required(), Range(0, 0xff)),
		},
	})

	// Consumption.
	GetInstantaneousDemandCommand = registerCommand(&Schema{
		Tag: "get_instantaneous_demand",
		Fields: []Field{
			Hex("MeterMacId"),
			Boolean("Refresh"),
		},
	})
	GetCurrentSummationDeliveredCommand = registerCommand(&Schema{
		Tag: "get_current_summation_delivered",
		Fields: []Field{
			Hex("MeterMacId"),
			Boolean("Refresh"),
		},
	})
	GetCurrentPeriodUsageCommand = registerCommand(&Schema{
		Tag:    "get_current_period_usage",
		Fields: []Field{Hex("MeterMacId")},
	})
	GetLastPeriodUsageCommand = registerCommand(&Schema{
		Tag:    "get_last_period_usage",
		Fields: []Field{Hex("MeterMacId")},
	})
	CloseCurrentPeriodCommand = registerCommand(&Schema{
		Tag:    "close_current_period",
		Fields: []Field{Hex("MeterMacId")},
	})

	// Polling and profiles.
	SetFastPollCommand = registerCommand(&Schema{
		Tag: "set_fast_poll",
		Fields: []Field{
			Hex("MeterMacId"),
			Hex("Frequency", Required(), Range(4, 0xffff)),
			Hex("Duration", Required(), Range(0, 900)),
		},
	})
	GetProfileDataCommand = registerCommand(&Schema{
		Tag: "get_profile_data",
		Fields: []Field{
			Hex("MeterMacId"),
			Hex("NumberOfPeriods", Required(), Range(0, 12)),
			Hex("EndTime", Required(), Range(0, 0xffffffff)),
			Enumeration("IntervalChannel", IntervalChannelVocab, Required()),
		},
	})
)
