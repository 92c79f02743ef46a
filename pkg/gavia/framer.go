// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"regexp"
	"strings"
)

// RawRecord is the verbatim line run of one framed record, from the opening
// tag line to the line carrying the closing tag, inclusive. Transient: it is
// handed straight to Schema.Decode and discarded.
type RawRecord struct {
	Tag   string
	Lines []string
}

// Start tags stand alone from the last '<' to end of line; end tags may
// trail arbitrary record content on the same physical line.
var (
	startTagPattern = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9_]*)>$`)
	endTagPattern   = regexp.MustCompile(`</([A-Za-z][A-Za-z0-9_]*)>$`)
)

// Framer recovers record boundaries from a raw line stream. The transport
// guarantees nothing about where records begin or end relative to the lines
// it delivers: start tags can share a physical line with the previous
// record's tail, end tags can go missing entirely, and stray fragments can
// precede the first well-formed record. The framer's contract is that none
// of that may corrupt the next correctly bounded record.
//
// PushLine returns a complete RawRecord when a record closes, and a
// *TruncationDiagnostic (advisory, self-healing) when a fragment is
// discarded. The two never occur on the same call.
type Framer struct {
	collecting bool
	buffer     []string
	pendingTag string
}

// NewFramer creates an idle framer.
func NewFramer() *Framer {
	return &Framer{}
}

// Reset returns the framer to idle, dropping any partial record.
func (f *Framer) Reset() {
	f.collecting = false
	f.buffer = nil
	f.pendingTag = ""
}

// PushLine feeds one raw line through the resynchronizer.
func (f *Framer) PushLine(line string) (*RawRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		// Blank lines are read timeouts on this transport, not content.
		return nil, nil
	}

	var head, tail string
	if i := strings.LastIndexByte(line, '<'); i >= 0 {
		head, tail = line[:i], line[i:]
	} else {
		head = line
	}

	if m := startTagPattern.FindStringSubmatch(tail); m != nil {
		return f.beginRecord(head, tail, m[1])
	}

	// Not a start of anything new: the whole line belongs to the current
	// candidate record.
	f.buffer = append(f.buffer, line)
	if tag := f.endMatch(line); tag != "" {
		return f.closeRecord(tag)
	}
	return nil, nil
}

// beginRecord handles an accepted start tag. Leftover head content belongs
// to the record in progress and may close it: that covers end tags sharing a
// physical line with the following record's start tag.
func (f *Framer) beginRecord(head, tail, tag string) (*RawRecord, error) {
	if head != "" {
		f.buffer = append(f.buffer, head)
	}

	var record *RawRecord
	var diag error
	if n := len(f.buffer); n > 0 {
		if endTag := f.endMatch(f.buffer[n-1]); endTag != "" {
			record, diag = f.closeRecord(endTag)
		}
	}
	if len(f.buffer) > 0 {
		diag = &TruncationDiagnostic{Reason: "missing end", Dropped: len(f.buffer)}
	}

	f.collecting = true
	f.pendingTag = tag
	f.buffer = []string{tail}
	return record, diag
}

// closeRecord resolves an end-tag match: a complete record if a start was
// accepted, a missing-start diagnostic otherwise.
func (f *Framer) closeRecord(tag string) (*RawRecord, error) {
	if f.collecting {
		record := &RawRecord{Tag: tag, Lines: f.buffer}
		f.Reset()
		return record, nil
	}
	dropped := len(f.buffer)
	f.Reset()
	return nil, &TruncationDiagnostic{Reason: "missing start", Dropped: dropped}
}

// endMatch reports the end tag closing the current candidate, if any. While
// collecting, only the pending tag closes the record; element close tags
// inside the body (<X>1</X>) must not. Idle, any end-tag shape counts so the
// fragment can be discarded with a diagnostic.
func (f *Framer) endMatch(line string) string {
	if f.collecting {
		if strings.HasSuffix(line, "</"+f.pendingTag+">") {
			return f.pendingTag
		}
		return ""
	}
	if m := endTagPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

// Flush reports the end of the line stream. A record still being collected
// can never complete, so it is discarded with a missing-end diagnostic.
func (f *Framer) Flush() error {
	defer f.Reset()
	if f.collecting && len(f.buffer) > 0 {
		return &TruncationDiagnostic{Reason: "missing end", Dropped: len(f.buffer)}
	}
	return nil
}
