// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package passes

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph"
	"github.com/gogpu/rendergraph/passlib"
)

func init() {
	passlib.Register(ClearInfo.Name, ClearInfo.Description, newClearFromParams)
	passlib.Register(RecordInfo.Name, RecordInfo.Description, newRecordFromParams)
}

// newClearFromParams reads an optional "color" gputypes.Color.
func newClearFromParams(params passlib.Params) (rendergraph.Pass, error) {
	color := gputypes.Color{A: 1}
	if v, ok := params["color"]; ok {
		c, ok := v.(gputypes.Color)
		if !ok {
			return nil, fmt.Errorf("passes: Clear color must be gputypes.Color, got %T", v)
		}
		color = c
	}
	return NewClear(color), nil
}

// newRecordFromParams writes files when "dir" is set. "prefix" defaults to
// "frame" and "encoding" to "png".
func newRecordFromParams(params passlib.Params) (rendergraph.Pass, error) {
	dir := params.String("dir", "")
	if dir == "" {
		return NewRecord(nil), nil
	}
	enc, err := ParseEncoding(params.String("encoding", "png"))
	if err != nil {
		return nil, err
	}
	return NewRecord(FileSink(dir, params.String("prefix", "frame"), enc)), nil
}
