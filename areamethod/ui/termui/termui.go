// Package termui provides objects and methods for interactive UI in terminal windows.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
//
package termui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko/tracing"
)

// trace traces with key 'areamethod.cli'.
func trace() tracing.Trace {
	return tracing.Select("areamethod.cli")
}

// Formatter prints items produced by an interpreter.
type Formatter interface {
	Format(interface{}, io.Writer) (bool, error)
}

// DefaultFormatter prints strings, errors, tables and hierarchical objects.
type DefaultFormatter struct{}

// Format implements Formatter.
func (df DefaultFormatter) Format(item interface{}, w io.Writer) (bool, error) {
	switch t := item.(type) {
	case string:
		_, err := fmt.Fprintf(w, "▶ %s\n", t)
		return err == nil, err
	case error:
		_, err := fmt.Fprintf(w, "▶ error: %v\n", t)
		return err == nil, err
	case map[string]interface{}:
		jsn, err := json.MarshalIndent(t, "  ", "    ")
		if err != nil {
			return false, nil
		}
		io.WriteString(w, "▶ Hierarchical object: ")
		w.Write(jsn)
		w.Write([]byte{'\n'})
		return true, nil
	case table.Writer:
		io.WriteString(w, t.Render())
		w.Write([]byte{'\n'})
		return true, nil
	case fmt.Stringer:
		_, err := fmt.Fprintf(w, "▶ %s\n", t)
		return err == nil, err
	}
	fmt.Fprintf(w, "▶ object of type %T\n", item)
	return true, nil
}
