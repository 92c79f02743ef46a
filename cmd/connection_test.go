// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"bytes"
	"io"
	"testing"
)

type scriptedConn struct {
	io.Reader
	wrote bytes.Buffer
}

func (s *scriptedConn) Write(p []byte) (int, error) { return s.wrote.Write(p) }
func (s *scriptedConn) Close() error                { return nil }

func TestLineConnStripsNULPadding(t *testing.T) {
	// The adapter pads with NUL bytes after a reset; they must never reach
	// the protocol engine.
	raw := "\x00\x00<InstantaneousDemand>\r\n<Demand>0x188</Demand>\x00\r\n"
	conn := &scriptedConn{Reader: bytes.NewReader([]byte(raw))}
	line := NewLineConn(conn)

	want := []string{"<InstantaneousDemand>\r\n", "<Demand>0x188</Demand>\r\n"}
	for _, w := range want {
		got, err := line.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine: %v", err)
		}
		if got != w {
			t.Errorf("ReadLine = %q, want %q", got, w)
		}
	}
	if _, err := line.ReadLine(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestLineConnDeliversPartialLineAtStreamEnd(t *testing.T) {
	conn := &scriptedConn{Reader: bytes.NewReader([]byte("<TimeCluster>"))}
	line := NewLineConn(conn)

	got, err := line.ReadLine()
	if err != nil || got != "<TimeCluster>" {
		t.Fatalf("ReadLine = (%q, %v), want partial line", got, err)
	}
	if _, err := line.ReadLine(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
}

func TestLineConnWritePassthrough(t *testing.T) {
	conn := &scriptedConn{Reader: bytes.NewReader(nil)}
	line := NewLineConn(conn)

	wire := []byte("<Command>\n<Name>initialize</Name>\n</Command>\n")
	n, err := line.Write(wire)
	if err != nil || n != len(wire) {
		t.Fatalf("Write = (%d, %v)", n, err)
	}
	if !bytes.Equal(conn.wrote.Bytes(), wire) {
		t.Errorf("wrote %q", conn.wrote.Bytes())
	}
}
