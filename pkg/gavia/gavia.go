// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

// Package gavia implements the RAVEn(TM) XML serial API as a typed,
// schema-driven protocol engine.
//
// The device emits newline-delimited pseudo-XML notifications and accepts
// pseudo-XML commands over a serial link. This package provides the frame
// resynchronizer that recovers record boundaries from a noisy line stream,
// the schema-driven field codec that converts between wire text and typed
// values in both directions, and a Session that drives the whole pipeline
// from a line transport.
package gavia

import "time"

// Epoch is the protocol time origin. Date fields travel as a hex count of
// seconds since this instant. Not configurable.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Wire tag of every outgoing command record.
const CommandTag = "Command"

// ResponseTypeField is the synthetic entry added to every decoded record
// carrying the schema tag.
const ResponseTypeField = "response_type"

// intervalPeriods is the fixed table of standard profile interval lengths in
// seconds. Wire values are indexes into this table, most-coarse first.
var intervalPeriods = []int64{86400, 3600, 1800, 900, 600, 450, 300, 150}

// DefaultQueueSize bounds the session's decoded-record queue. When full the
// oldest record is dropped, matching the device-monitor use case where only
// recent readings matter.
const DefaultQueueSize = 10000
