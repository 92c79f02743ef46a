// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"errors"
	"testing"
)

// pushAll feeds lines through a framer, collecting completed records and
// truncation diagnostics.
func pushAll(t *testing.T, f *Framer, lines []string) ([]*RawRecord, []*TruncationDiagnostic) {
	t.Helper()
	var records []*RawRecord
	var diags []*TruncationDiagnostic
	for _, line := range lines {
		record, err := f.PushLine(line)
		if err != nil {
			var trunc *TruncationDiagnostic
			if !errors.As(err, &trunc) {
				t.Fatalf("PushLine(%q): unexpected error %v", line, err)
			}
			diags = append(diags, trunc)
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, diags
}

func TestFramerWellFormedRecord(t *testing.T) {
	f := NewFramer()
	records, diags := pushAll(t, f, []string{"<A>", "<X>1</X>", "</A>"})

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Tag != "A" {
		t.Errorf("tag = %q, want A", records[0].Tag)
	}
	if len(records[0].Lines) != 3 {
		t.Errorf("lines = %v, want all 3", records[0].Lines)
	}
}

func TestFramerMissingEndAtStreamEnd(t *testing.T) {
	f := NewFramer()
	records, diags := pushAll(t, f, []string{"<A>", "<X>1</X>"})
	if len(records) != 0 || len(diags) != 0 {
		t.Fatalf("premature output: records=%v diags=%v", records, diags)
	}

	err := f.Flush()
	var trunc *TruncationDiagnostic
	if !errors.As(err, &trunc) {
		t.Fatalf("Flush: got %v, want truncation diagnostic", err)
	}
	if trunc.Reason != "missing end" {
		t.Errorf("reason = %q, want missing end", trunc.Reason)
	}
}

func TestFramerEndTagSharesLineWithBody(t *testing.T) {
	// A record already collecting closes on a line whose head is leftover
	// body content; the next line opens a fresh record.
	f := NewFramer()
	if _, err := f.PushLine("<A>"); err != nil {
		t.Fatal(err)
	}
	records, diags := pushAll(t, f, []string{"<X>1</X></A>", "<B>"})

	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(records) != 1 || records[0].Tag != "A" {
		t.Fatalf("records = %v, want one record A", records)
	}
	if got := records[0].Lines[len(records[0].Lines)-1]; got != "<X>1</X></A>" {
		t.Errorf("closing line = %q, want the full shared line", got)
	}

	// B must now be collecting, unaffected by the shared line.
	record, err := f.PushLine("</B>")
	if err != nil {
		t.Fatalf("close B: %v", err)
	}
	if record == nil || record.Tag != "B" {
		t.Errorf("record = %v, want B", record)
	}
}

func TestFramerEndTagSharesLineWithNextStart(t *testing.T) {
	// "</A><B>" on one physical line: A closes via the head portion, B
	// begins with the tail.
	f := NewFramer()
	if _, err := f.PushLine("<A>"); err != nil {
		t.Fatal(err)
	}
	record, err := f.PushLine("</A><B>")
	if err != nil {
		t.Fatalf("shared line: %v", err)
	}
	if record == nil || record.Tag != "A" {
		t.Fatalf("record = %v, want A", record)
	}

	record, err = f.PushLine("</B>")
	if err != nil {
		t.Fatalf("close B: %v", err)
	}
	if record == nil || record.Tag != "B" {
		t.Errorf("record = %v, want B", record)
	}
}

func TestFramerMissingStart(t *testing.T) {
	f := NewFramer()
	records, diags := pushAll(t, f, []string{"</A>"})

	if len(records) != 0 {
		t.Fatalf("records = %v, want none", records)
	}
	if len(diags) != 1 || diags[0].Reason != "missing start" {
		t.Fatalf("diags = %v, want one missing-start", diags)
	}

	// Self-healing: the next well-formed record is unaffected.
	records, diags = pushAll(t, f, []string{"<B>", "<Y>2</Y>", "</B>"})
	if len(diags) != 0 || len(records) != 1 || records[0].Tag != "B" {
		t.Errorf("after resync: records=%v diags=%v", records, diags)
	}
}

func TestFramerRestartDiscardsUnclosedBuffer(t *testing.T) {
	f := NewFramer()
	records, diags := pushAll(t, f, []string{"<A>", "<X>1</X>", "<B>", "</B>"})

	if len(diags) != 1 || diags[0].Reason != "missing end" {
		t.Fatalf("diags = %v, want one missing-end", diags)
	}
	if len(records) != 1 || records[0].Tag != "B" {
		t.Fatalf("records = %v, want only B", records)
	}
}

func TestFramerElementCloseDoesNotEndRecord(t *testing.T) {
	// </X> closes an element, not the record: only the pending tag ends
	// collection.
	f := NewFramer()
	records, _ := pushAll(t, f, []string{"<A>", "<X>1</X>", "<Y>2</Y>", "</A>"})
	if len(records) != 1 || len(records[0].Lines) != 4 {
		t.Fatalf("records = %+v, want one 4-line record", records)
	}
}

func TestFramerBlankLinesIgnored(t *testing.T) {
	f := NewFramer()
	records, diags := pushAll(t, f, []string{"<A>", "", "  ", "</A>"})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(records) != 1 || len(records[0].Lines) != 2 {
		t.Fatalf("records = %+v, want one 2-line record", records)
	}
}

func TestFramerInterleavedNoise(t *testing.T) {
	// A torn record, a stray end tag, then a clean record: exactly one
	// record must survive.
	lines := []string{
		"<InstantaneousDemand>",
		"<DeviceMacId>0xd8d5b90000000001</DeviceMacId>",
		"</TimeCluster>",
		"<PriceCluster>",
		"<Currency>0x348</Currency>",
		"</PriceCluster>",
	}
	f := NewFramer()
	records, diags := pushAll(t, f, lines)

	if len(records) != 1 || records[0].Tag != "PriceCluster" {
		t.Fatalf("records = %v, want only PriceCluster", records)
	}
	if len(diags) != 1 {
		t.Fatalf("diags = %v, want one", diags)
	}
}
